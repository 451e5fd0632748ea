package types

// Preset is a named saved show: which tag the frame cycles through and how.
// Hours use -1 for "disabled", brightness uses -1 for "auto".
type Preset struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	Tag             string  `json:"tag" yaml:"tag"`
	Brightness      float64 `json:"brightness" yaml:"brightness"`
	IntervalMinutes int     `json:"intervalMinutes" yaml:"intervalMinutes"`
	QuietStartHour  int     `json:"quietStartHour" yaml:"quietStartHour"`
	QuietEndHour    int     `json:"quietEndHour" yaml:"quietEndHour"`
}
