package game

// Statistics are the cumulative round outcomes across the lifetime of the
// installation. They only ever increment; Reset is the single exception.
type Statistics struct {
	PlayerWins   int `json:"player_wins" mapstructure:"player_wins"`
	ComputerWins int `json:"computer_wins" mapstructure:"computer_wins"`
	Draws        int `json:"draws" mapstructure:"draws"`
}

func (s *Statistics) Record(o Outcome) {
	switch o {
	case Won:
		s.PlayerWins++
	case Lost:
		s.ComputerWins++
	case Drawn:
		s.Draws++
	}
}

func (s *Statistics) Reset() {
	*s = Statistics{}
}
