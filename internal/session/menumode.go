package session

import "github.com/qkzk/dired/internal/menu"

// MenuModeKind is the variant tag of a tab's menu state. Deliberately kept
// as a tagged union with MenuMode rather than a set of independent
// booleans: a tab can only be in exactly one of these at a time, and the
// transition rules below are the only legal ways to move between them.
type MenuModeKind int

const (
	MenuNothing MenuModeKind = iota
	MenuInputSimple
	MenuInputCompleted
	MenuNavigate
	MenuNeedConfirmation
)

// InputKind names which prompt is active when MenuModeKind is
// MenuInputSimple or MenuInputCompleted.
type InputKind int

const (
	InputCommand InputKind = iota
	InputSearch
	InputFilter
	InputRename
	InputNewFile
	InputNewDir
	InputChmod
	InputRegexMatch
	InputGoto
	InputExec
	InputMarksNewKey
	InputTempMarksNewKey
	InputMountPassword
	InputBulkEdit
)

// MenuMode is the full variant value: the tag plus whichever payload that
// tag carries. InputKind is meaningful only for the two input variants;
// NavigateKind only for Navigate and NeedConfirmation.
type MenuMode struct {
	Kind         MenuModeKind
	InputKind    InputKind
	NavigateKind menu.Kind
}

// closed reports whether no menu/input overlay is active.
func (m MenuMode) closed() bool { return m.Kind == MenuNothing }
