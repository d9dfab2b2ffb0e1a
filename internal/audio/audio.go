// Package audio plays short synthesized cues for deployments, actions and outcomes.
package audio

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/samdwyer/troupe/internal/combat"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/geom"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a named sound.
type Cue int

const (
	CueDeploy Cue = iota
	CueAction
	CueVictory
	CueDefeat
)

func (c Cue) String() string {
	switch c {
	case CueDeploy:
		return "deploy"
	case CueAction:
		return "action"
	case CueVictory:
		return "victory"
	case CueDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueDeploy:  {{440, 40 * time.Millisecond}, {660, 60 * time.Millisecond}},
	CueAction:  {{220, 80 * time.Millisecond}, {165, 120 * time.Millisecond}},
	CueVictory: {{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 240 * time.Millisecond}},
	CueDefeat:  {{392, 160 * time.Millisecond}, {311, 160 * time.Millisecond}, {262, 320 * time.Millisecond}},
}

// Duration returns how long the cue plays.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}

// Streamer builds the cue as a sequence of attenuated sine tones.
func (c Cue) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	var tones []beep.Streamer
	for _, n := range cueNotes[c] {
		sine, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, err
		}
		tones = append(tones, beep.Take(sr.N(n.dur), sine))
	}
	return &effects.Gain{Streamer: beep.Seq(tones...), Gain: -0.7}, nil
}

// Player plays cues on the system speaker. A disabled or failed player is silent.
type Player struct {
	enabled bool
	ready   bool
}

// NewPlayer creates a player. Init must be called before cues are heard.
func NewPlayer(enabled bool) *Player {
	return &Player{enabled: enabled}
}

// Init opens the speaker.
func (p *Player) Init() error {
	if !p.enabled || p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	p.ready = true
	return nil
}

// Play starts a cue without blocking.
func (p *Player) Play(c Cue) {
	if !p.ready {
		return
	}
	s, err := c.Streamer(sampleRate)
	if err != nil {
		log.Printf("Audio cue %s failed: %v", c, err)
		return
	}
	speaker.Play(s)
}

// Close releases the speaker.
func (p *Player) Close() {
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}

// UnitDeployed plays the deploy cue.
func (p *Player) UnitDeployed(*entity.Unit) {
	p.Play(CueDeploy)
}

// ActionUsed plays the action cue.
func (p *Player) ActionUsed(combat.ActionKind, geom.Vec2, []combat.EffectResult) {
	p.Play(CueAction)
}
