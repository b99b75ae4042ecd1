package expert

import (
	"fmt"
	"strings"
)

// Mode selects the expert persona that answers a question.
type Mode int

const (
	VSCodeExpert Mode = iota
	ColabExpert
)

// Modes lists every persona in display order.
var Modes = []Mode{VSCodeExpert, ColabExpert}

func (m Mode) String() string {
	switch m {
	case VSCodeExpert:
		return "vscode"
	case ColabExpert:
		return "colab"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label is the option text shown in the mode selector.
func (m Mode) Label() string {
	if m == VSCodeExpert {
		return "VSCode Expert"
	}
	return "Google Colab Expert"
}

// Description is the info line shown under the selector.
func (m Mode) Description() string {
	if m == VSCodeExpert {
		return "🔧 VSCodeの機能、拡張機能、設定、開発ワークフローについて専門的にサポートします"
	}
	return "💻 Google Colabの機能、ライブラリ、データ処理について専門的にサポートします"
}

func (m Mode) Placeholder() string {
	if m == VSCodeExpert {
		return "VSCodeについて質問してください..."
	}
	return "Google Colabについて質問してください..."
}

// Next cycles to the other persona.
func (m Mode) Next() Mode {
	if m == VSCodeExpert {
		return ColabExpert
	}
	return VSCodeExpert
}

// ParseMode accepts the short names ("vscode", "colab") as well as the
// selector labels, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vscode", "vscode expert", "vscode-expert", "code":
		return VSCodeExpert, nil
	case "colab", "google colab expert", "colab expert", "colab-expert", "google-colab":
		return ColabExpert, nil
	}
	return VSCodeExpert, fmt.Errorf("unknown expert mode %q (want vscode or colab)", s)
}
