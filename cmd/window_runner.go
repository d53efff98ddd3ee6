package cmd

import (
	"github.com/fchimpan/kusa-pong/internal/ebitenui"
)

func defaultRunWindow(m Match) error {
	return ebitenui.Run(ebitenui.Options{
		Config: m.Config,
		Seed:   m.Seed,
		Speed:  m.Speed,
		Names:  m.Names,
		Logger: m.Logger,
	})
}
