package midi

import "fmt"

// Controller is a control change number in [0, 119]. Numbers 120-127
// are reserved for channel mode messages and are represented by
// ChannelMode, not ControlChange.
type Controller uint8

// Defined controller numbers. Controllers 32-63 carry the LSBs of
// controllers 0-31 when 14-bit resolution is in use.
const (
	BankSelect       Controller = 0
	ModWheel         Controller = 1
	Breath           Controller = 2
	FootController   Controller = 4
	PortamentoTime   Controller = 5
	DataEntry        Controller = 6
	Volume           Controller = 7
	Balance          Controller = 8
	Pan              Controller = 10
	Expression       Controller = 11
	EffectControl1   Controller = 12
	EffectControl2   Controller = 13
	GeneralPurpose1  Controller = 16
	GeneralPurpose2  Controller = 17
	GeneralPurpose3  Controller = 18
	GeneralPurpose4  Controller = 19
	BankSelectLSB    Controller = 32
	ModWheelLSB      Controller = 33
	DataEntryLSB     Controller = 38
	VolumeLSB        Controller = 39
	Hold             Controller = 64
	Portamento       Controller = 65
	Sostenuto        Controller = 66
	SoftPedal        Controller = 67
	Legato           Controller = 68
	Hold2            Controller = 69
	SoundVariation   Controller = 70
	Timbre           Controller = 71
	ReleaseTime      Controller = 72
	AttackTime       Controller = 73
	Brightness       Controller = 74
	GeneralPurpose5  Controller = 80
	GeneralPurpose6  Controller = 81
	GeneralPurpose7  Controller = 82
	GeneralPurpose8  Controller = 83
	PortamentoCtrl   Controller = 84
	HighResVelocity  Controller = 88
	ReverbDepth      Controller = 91
	TremoloDepth     Controller = 92
	ChorusDepth      Controller = 93
	DetuneDepth      Controller = 94
	PhaserDepth      Controller = 95
	DataIncrementCC  Controller = 96
	DataDecrementCC  Controller = 97
	NRPNSelectLSB    Controller = 98
	NRPNSelectMSB    Controller = 99
	RPNSelectLSB     Controller = 100
	RPNSelectMSB     Controller = 101
)

var controllerNames = map[Controller]string{
	BankSelect:      "bank select",
	ModWheel:        "mod wheel",
	Breath:          "breath",
	FootController:  "foot controller",
	PortamentoTime:  "portamento time",
	DataEntry:       "data entry",
	Volume:          "volume",
	Balance:         "balance",
	Pan:             "pan",
	Expression:      "expression",
	EffectControl1:  "effect control 1",
	EffectControl2:  "effect control 2",
	BankSelectLSB:   "bank select lsb",
	ModWheelLSB:     "mod wheel lsb",
	DataEntryLSB:    "data entry lsb",
	VolumeLSB:       "volume lsb",
	Hold:            "hold pedal",
	Portamento:      "portamento",
	Sostenuto:       "sostenuto",
	SoftPedal:       "soft pedal",
	Legato:          "legato",
	Hold2:           "hold 2",
	SoundVariation:  "sound variation",
	Timbre:          "timbre",
	ReleaseTime:     "release time",
	AttackTime:      "attack time",
	Brightness:      "brightness",
	PortamentoCtrl:  "portamento control",
	HighResVelocity: "high resolution velocity",
	ReverbDepth:     "reverb depth",
	TremoloDepth:    "tremolo depth",
	ChorusDepth:     "chorus depth",
	DetuneDepth:     "detune depth",
	PhaserDepth:     "phaser depth",
	DataIncrementCC: "data increment",
	DataDecrementCC: "data decrement",
	NRPNSelectLSB:   "nrpn select lsb",
	NRPNSelectMSB:   "nrpn select msb",
	RPNSelectLSB:    "rpn select lsb",
	RPNSelectMSB:    "rpn select msb",
}

func (c Controller) String() string {
	if name, ok := controllerNames[c]; ok {
		return name
	}
	return fmt.Sprintf("controller %d", uint8(c))
}
