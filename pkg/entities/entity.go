// Package entities 定义场上的实体：玩家控制的猫、下落的狗和回血道具。
//
// 所有实体共享 Body（位置、速度、尺寸、贴图），通过 Entity 接口
// 提供绘制、更新和碰撞盒能力。实体之间没有共享的可变状态，
// 也不持有对 Game 的反向引用。
package entities

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// 音效资源ID
const (
	SoundHit   = "hit"   // 受伤音效
	SoundPower = "power" // 回血音效
)

// Entity 实体能力集合
type Entity interface {
	// Draw 将实体绘制到屏幕
	Draw(screen *ebiten.Image)
	// Update 按 tick 更新实体状态
	Update(dt float64)
	// BoundingBox 返回整数截断后的轴对齐碰撞盒
	BoundingBox() image.Rectangle
}

// SoundCue 播放音效的副作用出口
// 播放失败（如资源未加载）时返回 false，调用方不做处理
type SoundCue interface {
	PlaySound(soundID string) bool
}

// Arena 可活动区域尺寸
type Arena struct {
	Width  int
	Height int
}

// Body 实体的公共字段
type Body struct {
	X, Y  float64
	Speed float64
	Size  int           // 正方形边长，必须 > 0
	Image *ebiten.Image // 贴图，可为 nil（不绘制）
}

// Draw 在整数截断后的位置绘制贴图
// 贴图尺寸与 Size 不一致时缩放到 Size
func (b *Body) Draw(screen *ebiten.Image) {
	if screen == nil || b.Image == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	bounds := b.Image.Bounds()
	if w, h := bounds.Dx(), bounds.Dy(); w > 0 && h > 0 && (w != b.Size || h != b.Size) {
		op.GeoM.Scale(float64(b.Size)/float64(w), float64(b.Size)/float64(h))
	}
	op.GeoM.Translate(float64(int(b.X)), float64(int(b.Y)))
	screen.DrawImage(b.Image, op)
}

// Update 默认不做任何事
func (b *Body) Update(dt float64) {}

// BoundingBox 返回 [int(X), int(X)+Size) × [int(Y), int(Y)+Size)
func (b *Body) BoundingBox() image.Rectangle {
	x, y := int(b.X), int(b.Y)
	return image.Rect(x, y, x+b.Size, y+b.Size)
}

// Overlaps 判断两个实体的碰撞盒是否相交
// 仅边缘接触不算相交
func Overlaps(a, b Entity) bool {
	return a.BoundingBox().Overlaps(b.BoundingBox())
}
