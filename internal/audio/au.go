// Package audio 解码 Sun/NeXT .au 音频文件
//
// 解码结果统一为 16 位小端有符号立体声 PCM，
// 可以直接交给 Ebitengine 的 audio.Player（必要时先重采样）。
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	auMagic      = 0x2e736e64 // ".snd"
	auHeaderSize = 24
	auSizeAny    = 0xffffffff // 数据长度未知

	encodingMuLaw    = 1 // 8 位 μ-law
	encodingLinear8  = 2 // 8 位有符号线性 PCM
	encodingLinear16 = 3 // 16 位大端有符号线性 PCM
)

// Header .au 文件头
type Header struct {
	DataOffset uint32
	DataSize   uint32
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

// Stream 解码后的 PCM 流，实现 io.ReadSeeker
type Stream struct {
	data       []byte
	offset     int64
	sampleRate int
}

var muLawTable [256]int16

func init() {
	for i := range muLawTable {
		muLawTable[i] = decodeMuLaw(byte(i))
	}
}

// decodeMuLaw 按 G.711 规则展开一个 μ-law 字节
func decodeMuLaw(u byte) int16 {
	u = ^u
	exponent := (u >> 4) & 0x07
	mantissa := int(u & 0x0f)
	sample := ((mantissa << 3) + 0x84) << exponent
	sample -= 0x84
	if u&0x80 != 0 {
		return int16(-sample)
	}
	return int16(sample)
}

// ParseHeader 解析并校验文件头
func ParseHeader(data []byte) (Header, error) {
	if len(data) < auHeaderSize {
		return Header{}, fmt.Errorf("AU file too short: %d bytes (minimum %d)", len(data), auHeaderSize)
	}

	if magic := binary.BigEndian.Uint32(data[0:4]); magic != auMagic {
		return Header{}, fmt.Errorf("invalid AU magic number: 0x%08x (expected 0x%08x)", magic, auMagic)
	}

	h := Header{
		DataOffset: binary.BigEndian.Uint32(data[4:8]),
		DataSize:   binary.BigEndian.Uint32(data[8:12]),
		Encoding:   binary.BigEndian.Uint32(data[12:16]),
		SampleRate: binary.BigEndian.Uint32(data[16:20]),
		Channels:   binary.BigEndian.Uint32(data[20:24]),
	}

	switch h.Encoding {
	case encodingMuLaw, encodingLinear8, encodingLinear16:
	default:
		return Header{}, fmt.Errorf("unsupported AU encoding: %d", h.Encoding)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return Header{}, fmt.Errorf("unsupported channel count: %d (only 1-2 supported)", h.Channels)
	}
	if h.SampleRate == 0 {
		return Header{}, fmt.Errorf("invalid sample rate: 0")
	}
	if h.DataOffset < auHeaderSize || int(h.DataOffset) > len(data) {
		return Header{}, fmt.Errorf("invalid data offset: %d (file size: %d)", h.DataOffset, len(data))
	}
	return h, nil
}

// Decode 读取整个 .au 文件并解码为 16 位立体声 PCM
func Decode(r io.Reader) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU file: %w", err)
	}

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[h.DataOffset:]
	if h.DataSize != auSizeAny && int(h.DataSize) < len(payload) {
		payload = payload[:h.DataSize]
	}

	samples := toSamples(payload, h.Encoding)
	return &Stream{
		data:       toStereo16(samples, int(h.Channels)),
		sampleRate: int(h.SampleRate),
	}, nil
}

// toSamples 按编码展开为 int16 采样（交错声道）
func toSamples(payload []byte, encoding uint32) []int16 {
	switch encoding {
	case encodingMuLaw:
		out := make([]int16, len(payload))
		for i, b := range payload {
			out[i] = muLawTable[b]
		}
		return out
	case encodingLinear8:
		out := make([]int16, len(payload))
		for i, b := range payload {
			out[i] = int16(int8(b)) << 8
		}
		return out
	default:
		out := make([]int16, len(payload)/2)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(payload[i*2:]))
		}
		return out
	}
}

// toStereo16 单声道复制到左右声道，输出小端字节
func toStereo16(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		left := samples[f*channels]
		right := left
		if channels == 2 {
			right = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(left))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(right))
	}
	return out
}

// Read 实现 io.Reader
func (s *Stream) Read(p []byte) (int, error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.offset + offset
	case io.SeekEnd:
		next = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	s.offset = next
	return next, nil
}

// Length 解码后数据的字节数
func (s *Stream) Length() int64 {
	return int64(len(s.data))
}

// SampleRate 原始采样率（Hz）
func (s *Stream) SampleRate() int {
	return s.sampleRate
}
