package config

// 窗口与帧率配置常量
// 逻辑分辨率固定，Ebitengine 会自动处理窗口缩放
const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 800

	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 600

	// TargetTPS 每秒逻辑更新次数
	// 下落速度以"每 tick 像素"为单位，与该值耦合
	TargetTPS = 60

	// WindowTitle 窗口标题
	WindowTitle = "NYAWNYAWNYAW - Cat Run"

	// GameTitle 菜单标题
	GameTitle = "NYAWNYAWNYAW"

	// DefaultConfigPath 嵌入的默认配置文件路径
	DefaultConfigPath = "data/game.yaml"
)

// TickDuration 返回单个 tick 的时长（秒）
func TickDuration() float64 {
	return 1.0 / float64(TargetTPS)
}
