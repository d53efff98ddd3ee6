package ebitenui

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/fchimpan/kusa-pong/internal/game"
)

const sampleRate = 44100

// beeper plays a short synthesized tone per goal.
type beeper struct {
	ctx  *audio.Context
	tone []byte
}

func newBeeper() *beeper {
	return &beeper{
		ctx:  audio.NewContext(sampleRate),
		tone: sineTone(880, 0.12, 0.3),
	}
}

func (b *beeper) GoalScored(game.Side) {
	p := b.ctx.NewPlayerFromBytes(b.tone)
	p.Play()
}

// sineTone renders a 16-bit little-endian stereo sine wave with a linear
// fade-out, the format Ebitengine audio players expect.
func sineTone(freq, seconds, volume float64) []byte {
	n := int(seconds * sampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * volume * fade
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[4*i:], s)
		binary.LittleEndian.PutUint16(buf[4*i+2:], s)
	}
	return buf
}
