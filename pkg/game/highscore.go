package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// HighScoreRecord 最高分文件内容：{"highscore": <integer>}
type HighScoreRecord struct {
	HighScore int `json:"highscore"`
}

// HighScoreStore 最高分存储
//
// 职责：
//   - 启动时从 JSON 文件加载最高分
//   - 本局分数严格大于最高分时更新并写回文件
//
// 读写失败都不会中断游戏：读失败时最高分为 0，写失败只记录日志。
type HighScoreStore struct {
	path string
	best int
}

// NewHighScoreStore 创建最高分存储，不读取文件
//
// 参数：
//   - path: JSON 文件路径（如 "highscore.json"）
func NewHighScoreStore(path string) *HighScoreStore {
	return &HighScoreStore{path: path}
}

// OpenHighScoreStore 创建最高分存储并立即加载
// 文件缺失或损坏时最高分为 0，错误只记录日志
func OpenHighScoreStore(path string) *HighScoreStore {
	store := NewHighScoreStore(path)
	if err := store.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[HighScore] No high score file at %s, starting from 0", path)
		} else {
			log.Printf("[HighScore] Warning: %v (starting from 0)", err)
		}
	}
	return store
}

// Path 返回文件路径
func (s *HighScoreStore) Path() string {
	return s.path
}

// Best 返回当前最高分
func (s *HighScoreStore) Best() int {
	return s.best
}

// Load 读取最高分文件
//
// 返回：
//   - error: 文件缺失（包装 os.ErrNotExist）、JSON 损坏或数值为负；
//     任何错误下最高分都被重置为 0
func (s *HighScoreStore) Load() error {
	s.best = 0

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read high score file %s: %w", s.path, err)
	}

	var record HighScoreRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to parse high score file %s: %w", s.path, err)
	}
	if record.HighScore < 0 {
		return fmt.Errorf("invalid high score %d in %s", record.HighScore, s.path)
	}

	s.best = record.HighScore
	log.Printf("[HighScore] Loaded high score: %d", s.best)
	return nil
}

// Submit 提交本局分数
// 只有严格大于当前最高分时才更新并保存
//
// 返回：
//   - bool: 是否刷新了最高分（即使保存失败也为 true，内存中的值已更新）
//   - error: 保存失败的错误
func (s *HighScoreStore) Submit(score int) (bool, error) {
	if score <= s.best {
		return false, nil
	}

	s.best = score
	log.Printf("[HighScore] New high score: %d", score)
	return true, s.Save()
}

// Save 将当前最高分写入文件
func (s *HighScoreStore) Save() error {
	data, err := json.Marshal(HighScoreRecord{HighScore: s.best})
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create high score directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write high score file %s: %w", s.path, err)
	}
	return nil
}
