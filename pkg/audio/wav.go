// Package audio holds the WAV container helpers used by the simulated device
// library and by sotactl to report the length of synthesized speech.
//
// Only uncompressed 16-bit little-endian PCM is produced. Parsing accepts any
// RIFF/WAVE file whose fmt chunk precedes its data chunk.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// BitsPerSample is the sample width produced by [Encode].
const BitsPerSample = 16

// Format describes the sample rate and channel count of a PCM stream.
type Format struct {
	SampleRate int
	Channels   int
}

// Info is the format metadata of a parsed WAV file.
type Info struct {
	Format
	BitsPerSample int
	// DataOffset is the byte offset of the first PCM sample.
	DataOffset int
	// DataSize is the length of the PCM payload in bytes.
	DataSize int
}

// Duration returns the play time of the PCM payload.
func (i Info) Duration() time.Duration {
	bytesPerSecond := i.SampleRate * i.Channels * i.BitsPerSample / 8
	if bytesPerSecond <= 0 {
		return 0
	}
	return time.Duration(int64(i.DataSize) * int64(time.Second) / int64(bytesPerSecond))
}

var (
	// ErrNotWAV is returned when the input is not a RIFF/WAVE container.
	ErrNotWAV = errors.New("audio: not a RIFF/WAVE file")
	// ErrNoData is returned when the container has no data chunk.
	ErrNoData = errors.New("audio: WAV file missing data chunk")
)

// Encode wraps 16-bit signed little-endian PCM in a RIFF/WAVE container.
func Encode(pcm []byte, f Format) []byte {
	byteRate := f.SampleRate * f.Channels * BitsPerSample / 8
	blockAlign := f.Channels * BitsPerSample / 8
	dataSize := len(pcm)

	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], BitsPerSample)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	copy(buf[44:], pcm)

	return buf
}

// Parse walks the RIFF chunks of wav and returns the format and the location
// of the PCM payload. A data chunk whose declared size runs past the end of
// the input is truncated to the available bytes.
func Parse(wav []byte) (Info, error) {
	if len(wav) < 12 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return Info{}, ErrNotWAV
	}

	var info Info
	foundFmt := false

	offset := 12
	for offset+8 <= len(wav) {
		id := string(wav[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(wav[offset+4 : offset+8]))

		switch id {
		case "fmt ":
			if size < 16 || offset+8+16 > len(wav) {
				return Info{}, fmt.Errorf("audio: fmt chunk too short (%d bytes)", size)
			}
			fmtData := wav[offset+8:]
			info.Channels = int(binary.LittleEndian.Uint16(fmtData[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtData[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtData[14:16]))
			foundFmt = true
		case "data":
			if !foundFmt {
				return Info{}, errors.New("audio: data chunk before fmt chunk")
			}
			info.DataOffset = offset + 8
			info.DataSize = min(size, len(wav)-info.DataOffset)
			return info, nil
		}

		// Chunks are word aligned.
		offset += 8 + size
		if size%2 != 0 {
			offset++
		}
	}
	return Info{}, ErrNoData
}

// Duration parses wav and returns its play time.
func Duration(wav []byte) (time.Duration, error) {
	info, err := Parse(wav)
	if err != nil {
		return 0, err
	}
	return info.Duration(), nil
}

// Tone returns d worth of a mono sine wave at freq Hz as 16-bit PCM.
func Tone(freq float64, d time.Duration, sampleRate int) []byte {
	n := int(d.Seconds() * float64(sampleRate))
	pcm := make([]byte, n*2)
	for i := range n {
		v := 0.3 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return pcm
}

// Silence returns d worth of zeroed 16-bit PCM in format f.
func Silence(d time.Duration, f Format) []byte {
	n := int(d.Seconds() * float64(f.SampleRate))
	return make([]byte, n*f.Channels*2)
}
