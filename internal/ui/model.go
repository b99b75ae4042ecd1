package ui

import (
	"context"
	"fmt"
	"strings"

	"assister/internal/assistant"
	"assister/internal/expert"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type State int

const (
	StateForm State = iota
	StateLoading
	StateAnswer
)

// Focus is the form section receiving keys.
type Focus int

const (
	FocusMode Focus = iota
	FocusInput
	FocusSubmit
	focusCount
)

const (
	appTitle       = "プログラムアシスター"
	emptyInputWarn = "質問内容を入力してください"
	defaultWidth   = 80
	defaultHeight  = 24
)

const aboutText = `📋 概要
このアプリは、プログラミングに関する質問に特化したAIアシスタントです。選択した専門家モードに応じて最適な回答を提供します。

🚀 使い方
1. 専門家モードを選択: VSCodeまたはGoogle Colabの専門家を選択
2. 質問を入力: テキストエリアに質問や相談内容を入力
3. 送信: 「質問する」を選んでEnter (どこからでも Ctrl+S)
4. 回答を確認: AI専門家からの回答が表示されます

💡 質問例
- VSCode: 「Pythonのデバッグ設定を教えて」「便利な拡張機能は？」
- Colab: 「GPUを使った機械学習の始め方は？」「大容量データの処理方法は？」`

// AskFunc sends one question to the selected expert.
type AskFunc func(ctx context.Context, question string, mode expert.Mode) (string, error)

type Model struct {
	State    State
	Mode     expert.Mode
	Focus    Focus
	ShowHelp bool

	Input    textarea.Model
	Spinner  spinner.Model
	Viewport viewport.Model

	Question string
	Answer   string
	Err      error
	Warning  string // form validation message
	Notice   string // answer view status line

	Theme  string
	Width  int
	Height int

	ctx context.Context
	ask AskFunc
}

func NewModel(ctx context.Context, ask AskFunc, mode expert.Mode, theme string) Model {
	ta := textarea.New()
	ta.Placeholder = mode.Placeholder()
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(defaultWidth - 6)
	ta.SetHeight(5)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	if ctx == nil {
		ctx = context.Background()
	}

	return Model{
		State:    StateForm,
		Mode:     mode,
		Focus:    FocusInput,
		ShowHelp: true,
		Input:    ta,
		Spinner:  sp,
		Viewport: viewport.New(defaultWidth-4, defaultHeight-8),
		Theme:    theme,
		Width:    defaultWidth,
		Height:   defaultHeight,
		ctx:      ctx,
		ask:      ask,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Input.SetWidth(max(msg.Width-6, 20))
		m.Viewport.Width = max(msg.Width-4, 20)
		m.Viewport.Height = max(msg.Height-8, 5)
		if m.State == StateAnswer {
			m.Viewport.SetContent(m.answerContent())
		}
		return m, nil

	case AnswerMsg:
		m.Answer = msg.Text
		m.Err = msg.Err
		m.Notice = ""
		m.State = StateAnswer
		m.Viewport.SetContent(m.answerContent())
		m.Viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.State != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.State {
		case StateForm:
			return m.updateForm(msg)
		case StateAnswer:
			return m.updateAnswer(msg)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.setFocus((m.Focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.Focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		return m.submit()
	case "f1":
		m.ShowHelp = !m.ShowHelp
		return m, nil
	case "esc":
		return m, tea.Quit
	}

	switch m.Focus {
	case FocusMode:
		switch msg.String() {
		case "left", "right", "up", "down", "h", "l", "j", "k", " ":
			m.Mode = m.Mode.Next()
			m.Input.Placeholder = m.Mode.Placeholder()
		case "enter":
			return m.setFocus(FocusInput)
		case "?":
			m.ShowHelp = !m.ShowHelp
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case FocusSubmit:
		switch msg.String() {
		case "enter", " ":
			return m.submit()
		case "?":
			m.ShowHelp = !m.ShowHelp
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Warning != "" && strings.TrimSpace(m.Input.Value()) != "" {
		m.Warning = ""
	}
	return m, cmd
}

func (m Model) setFocus(f Focus) (tea.Model, tea.Cmd) {
	m.Focus = f
	if f == FocusInput {
		return m, m.Input.Focus()
	}
	m.Input.Blur()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	question := m.Input.Value()
	if strings.TrimSpace(question) == "" {
		m.Warning = emptyInputWarn
		return m, nil
	}

	m.Warning = ""
	m.Question = question
	m.State = StateLoading
	m.Input.Blur()
	return m, tea.Batch(m.Spinner.Tick, m.askCmd(question, m.Mode))
}

func (m Model) askCmd(question string, mode expert.Mode) tea.Cmd {
	ctx, ask := m.ctx, m.ask
	return func() tea.Msg {
		text, err := ask(ctx, question, mode)
		return AnswerMsg{Text: text, Err: err}
	}
}

func (m Model) updateAnswer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "c":
		if m.Err != nil {
			return m, nil
		}
		if err := clipboard.WriteAll(m.Answer); err != nil {
			m.Notice = fmt.Sprintf("コピーに失敗しました: %v (wl-clipboard または xclip をインストールしてください)", err)
			return m, nil
		}
		m.Notice = "回答をクリップボードにコピーしました"
		return m, nil
	case "n", "esc":
		m.State = StateForm
		m.Answer = ""
		m.Err = nil
		m.Notice = ""
		m.Input.Reset()
		return m.setFocus(FocusInput)
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) answerContent() string {
	width := max(m.Width-6, 20)
	if m.Err != nil {
		return ErrorStyle.Render(wordwrap.String(assistant.Display(m.Err), width))
	}
	return RenderMarkdown(m.Answer, width, m.Theme)
}

func (m Model) View() string {
	var s strings.Builder
	wrap := max(m.Width-8, 20)

	s.WriteString(TitleStyle.Render(appTitle))
	s.WriteString("\n\n")

	switch m.State {
	case StateForm:
		if m.ShowHelp {
			s.WriteString(DescriptionStyle.Render("▼ アプリについて・説明"))
			s.WriteString("\n")
			s.WriteString(HelpPanelStyle.Render(wordwrap.String(aboutText, wrap)))
		} else {
			s.WriteString(DescriptionStyle.Render("▶ アプリについて・説明"))
		}
		s.WriteString("\n\n")

		s.WriteString(m.section(FocusMode, m.modeView(wrap)))
		s.WriteString("\n\n")

		var input strings.Builder
		input.WriteString(SubtitleStyle.Render("質問を入力"))
		input.WriteString("\n")
		input.WriteString(m.Input.View())
		s.WriteString(m.section(FocusInput, input.String()))
		s.WriteString("\n\n")

		btnStyle := ItemStyle
		if m.Focus == FocusSubmit {
			btnStyle = SelectedItemStyle
		}
		s.WriteString(btnStyle.Render("[ 質問する ]"))

		if m.Warning != "" {
			s.WriteString("\n\n")
			s.WriteString(WarningStyle.Render("⚠️ " + m.Warning))
		}

		s.WriteString("\n\n")
		s.WriteString(DescriptionStyle.Render("(Tab: 項目移動, Ctrl+S: 質問する, F1/?: 説明の表示切替, Esc: 終了)"))

	case StateLoading:
		s.WriteString(fmt.Sprintf("%s 専門家が回答を考えています...", m.Spinner.View()))
		s.WriteString("\n")
		s.WriteString(DescriptionStyle.Render(fmt.Sprintf("(%s)", m.Mode.Label())))

	case StateAnswer:
		s.WriteString(SubtitleStyle.Render("専門家からの回答"))
		s.WriteString(DescriptionStyle.Render(fmt.Sprintf("  %s", m.Mode.Label())))
		s.WriteString("\n\n")
		s.WriteString(m.Viewport.View())
		if m.Notice != "" {
			s.WriteString("\n")
			s.WriteString(WarningStyle.Render(m.Notice))
		}
		s.WriteString("\n\n")
		s.WriteString(DescriptionStyle.Render("(↑/↓: スクロール, c: コピー, n: 次の質問, q: 終了)"))
	}

	return lipgloss.NewStyle().Margin(1, 1).Render(s.String())
}

func (m Model) modeView(wrap int) string {
	var s strings.Builder
	s.WriteString(SubtitleStyle.Render("専門家モード選択"))
	s.WriteString("\n")
	s.WriteString("どちらの専門家に質問しますか？\n")
	for _, mode := range expert.Modes {
		mark := "( )"
		style := ItemStyle
		if mode == m.Mode {
			mark = "(•)"
			style = SelectedItemStyle
		}
		s.WriteString(style.Render(fmt.Sprintf("%s %s", mark, mode.Label())) + "\n")
	}
	s.WriteString(InfoStyle.Render(wordwrap.String(m.Mode.Description(), wrap)))
	return s.String()
}

func (m Model) section(f Focus, body string) string {
	if m.Focus == f {
		return FocusedStyle.Render(body)
	}
	return BlurredStyle.Render(body)
}

// AnswerMsg carries the handler's result back into the update loop.
type AnswerMsg struct {
	Text string
	Err  error
}
