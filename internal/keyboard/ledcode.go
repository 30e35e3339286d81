package keyboard

// LedCode names one addressable LED: a key, a lightbar segment or a zone.
// The string form is what layout files use.
type LedCode string

const (
	VolUp    LedCode = "VolUp"
	VolDown  LedCode = "VolDown"
	MicMute  LedCode = "MicMute"
	RogApp   LedCode = "RogApp"
	RogFan   LedCode = "RogFan"
	Esc      LedCode = "Esc"
	F1       LedCode = "F1"
	F2       LedCode = "F2"
	F3       LedCode = "F3"
	F4       LedCode = "F4"
	F5       LedCode = "F5"
	F6       LedCode = "F6"
	F7       LedCode = "F7"
	F8       LedCode = "F8"
	F9       LedCode = "F9"
	F10      LedCode = "F10"
	F11      LedCode = "F11"
	F12      LedCode = "F12"
	Del      LedCode = "Del"
	Tilde    LedCode = "Tilde"
	N1       LedCode = "N1"
	N2       LedCode = "N2"
	N3       LedCode = "N3"
	N4       LedCode = "N4"
	N5       LedCode = "N5"
	N6       LedCode = "N6"
	N7       LedCode = "N7"
	N8       LedCode = "N8"
	N9       LedCode = "N9"
	N0       LedCode = "N0"
	Hyphen   LedCode = "Hyphen"
	Equals   LedCode = "Equals"
	Bksp     LedCode = "Backspace"
	Bksp3_1  LedCode = "Backspace3_1"
	Bksp3_2  LedCode = "Backspace3_2"
	Bksp3_3  LedCode = "Backspace3_3"
	Home     LedCode = "Home"
	Tab      LedCode = "Tab"
	Q        LedCode = "Q"
	W        LedCode = "W"
	E        LedCode = "E"
	R        LedCode = "R"
	T        LedCode = "T"
	Y        LedCode = "Y"
	U        LedCode = "U"
	I        LedCode = "I"
	O        LedCode = "O"
	P        LedCode = "P"
	LBracket LedCode = "LBracket"
	RBracket LedCode = "RBracket"
	BackSl   LedCode = "BackSlash"
	PgUp     LedCode = "PgUp"
	Caps     LedCode = "Caps"
	A        LedCode = "A"
	S        LedCode = "S"
	D        LedCode = "D"
	F        LedCode = "F"
	G        LedCode = "G"
	H        LedCode = "H"
	J        LedCode = "J"
	K        LedCode = "K"
	L        LedCode = "L"
	Semi     LedCode = "SemiColon"
	Quote    LedCode = "Quote"
	Return   LedCode = "Return"
	Return31 LedCode = "Return3_1"
	Return32 LedCode = "Return3_2"
	Return33 LedCode = "Return3_3"
	PgDn     LedCode = "PgDn"
	LShift   LedCode = "LShift"
	LShift31 LedCode = "LShift3_1"
	LShift32 LedCode = "LShift3_2"
	LShift33 LedCode = "LShift3_3"
	Z        LedCode = "Z"
	X        LedCode = "X"
	C        LedCode = "C"
	V        LedCode = "V"
	B        LedCode = "B"
	N        LedCode = "N"
	M        LedCode = "M"
	Comma    LedCode = "Comma"
	Period   LedCode = "Period"
	FwdSl    LedCode = "FwdSlash"
	Star     LedCode = "Star"
	NumDel   LedCode = "NumPadDel"
	NumPlus  LedCode = "NumPadPlus"
	NumEnter LedCode = "NumPadEnter"
	NumPause LedCode = "NumPadPause"
	NumPrtSc LedCode = "NumPadPrtSc"
	NumHome  LedCode = "NumPadHome"
	NumLock  LedCode = "NumLock"
	RShift   LedCode = "Rshift"
	RShift31 LedCode = "Rshift3_1"
	RShift32 LedCode = "Rshift3_2"
	RShift33 LedCode = "Rshift3_3"
	End      LedCode = "End"
	LCtrl    LedCode = "LCtrl"
	LFn      LedCode = "LFn"
	Meta     LedCode = "Meta"
	LAlt     LedCode = "LAlt"
	Space    LedCode = "Spacebar"
	Space5_1 LedCode = "Spacebar5_1"
	Space5_2 LedCode = "Spacebar5_2"
	Space5_3 LedCode = "Spacebar5_3"
	Space5_4 LedCode = "Spacebar5_4"
	Space5_5 LedCode = "Spacebar5_5"
	Pause    LedCode = "Pause"
	RAlt     LedCode = "RAlt"
	PrtSc    LedCode = "PrtSc"
	RCtrl    LedCode = "RCtrl"
	Up       LedCode = "Up"
	Down     LedCode = "Down"
	Left     LedCode = "Left"
	Right    LedCode = "Right"
	RFn      LedCode = "RFn"
	MPlay    LedCode = "MediaPlay"
	MStop    LedCode = "MediaStop"
	MNext    LedCode = "MediaNext"
	MPrev    LedCode = "MediaPrev"
	LidLogo  LedCode = "LidLogo"
	LidLeft  LedCode = "LidLeft"
	LidRight LedCode = "LidRight"

	LightbarRight       LedCode = "LightbarRight"
	LightbarRightCorner LedCode = "LightbarRightCorner"
	LightbarRightBottom LedCode = "LightbarRightBottom"
	LightbarLeftBottom  LedCode = "LightbarLeftBottom"
	LightbarLeftCorner  LedCode = "LightbarLeftCorner"
	LightbarLeft        LedCode = "LightbarLeft"

	// SingleZone shares packet bytes with ZonedKbLeft.
	SingleZone      LedCode = "SingleZone"
	ZonedKbLeft     LedCode = "ZonedKbLeft"
	ZonedKbLeftMid  LedCode = "ZonedKbLeftMid"
	ZonedKbRightMid LedCode = "ZonedKbRightMid"
	ZonedKbRight    LedCode = "ZonedKbRight"

	// Spacing and Blocking only shape a layout; effects ignore them.
	Spacing  LedCode = "Spacing"
	Blocking LedCode = "Blocking"
)

var allCodes = []LedCode{
	VolUp, VolDown, MicMute, RogApp, RogFan, Esc, F1, F2, F3, F4, F5, F6, F7, F8, F9,
	F10, F11, F12, Del, Tilde, N1, N2, N3, N4, N5, N6, N7, N8, N9, N0, Hyphen, Equals,
	Bksp, Bksp3_1, Bksp3_2, Bksp3_3, Home, Tab, Q, W, E, R, T, Y, U, I, O, P, LBracket,
	RBracket, BackSl, PgUp, Caps, A, S, D, F, G, H, J, K, L, Semi, Quote, Return,
	Return31, Return32, Return33, PgDn, LShift, LShift31, LShift32, LShift33, Z, X, C,
	V, B, N, M, Comma, Period, FwdSl, Star, NumDel, NumPlus, NumEnter, NumPause,
	NumPrtSc, NumHome, NumLock, RShift, RShift31, RShift32, RShift33, End, LCtrl, LFn,
	Meta, LAlt, Space, Space5_1, Space5_2, Space5_3, Space5_4, Space5_5, Pause, RAlt,
	PrtSc, RCtrl, Up, Down, Left, Right, RFn, MPlay, MStop, MNext, MPrev, LidLogo,
	LidLeft, LidRight, LightbarRight, LightbarRightCorner, LightbarRightBottom,
	LightbarLeftBottom, LightbarLeftCorner, LightbarLeft, SingleZone, ZonedKbLeft,
	ZonedKbLeftMid, ZonedKbRightMid, ZonedKbRight, Spacing, Blocking,
}

var knownCodes = func() map[LedCode]bool {
	m := make(map[LedCode]bool, len(allCodes))
	for _, c := range allCodes {
		m[c] = true
	}
	return m
}()

// Valid reports whether c is a known code.
func (c LedCode) Valid() bool { return knownCodes[c] }

func (c LedCode) IsPlaceholder() bool { return c == Spacing || c == Blocking }

func (c LedCode) IsKeyboardZone() bool {
	switch c {
	case ZonedKbLeft, ZonedKbLeftMid, ZonedKbRightMid, ZonedKbRight:
		return true
	}
	return false
}

func (c LedCode) IsLightbarZone() bool {
	switch c {
	case LightbarLeft, LightbarLeftCorner, LightbarLeftBottom,
		LightbarRightBottom, LightbarRightCorner, LightbarRight:
		return true
	}
	return false
}
