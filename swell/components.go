package swell

// Crest describes one incoming wave front.
type Crest struct {
	Amplitude float32 // peak whitewater strength deposited on break
	BreakY    float32 // screen y where the crest collapses into foam
	Phase     float64 // noise row offset so crests don't share texture
}

// Kinematics is the crest's shoreward motion state.
type Kinematics struct {
	Y     float32 // current vertical position, px
	Speed float32 // shoreward travel, px/s
}
