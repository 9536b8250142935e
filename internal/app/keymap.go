package app

// Key binding constants used in handleKey.
const (
	KeyQuit       = "q"
	KeyQuitUpper  = "Q"
	KeyCtrlC      = "ctrl+c"
	KeySpace      = " "
	KeyTab        = "tab"
	KeyUp         = "up"
	KeyDown       = "down"
	KeyJ          = "j"
	KeyK          = "k"
	KeyEnter      = "enter"
	KeyEsc        = "esc"
	KeyGrant      = "g"
	KeySave       = "s"
	KeyClear      = "c"
	KeyDelete     = "x"
	KeyEditTitle  = "t"
	KeyEditText   = "i"
	KeySummarize  = "s"
	KeyExportText = "e"
	KeyExportDoc  = "d"
)
