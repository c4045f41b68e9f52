package ui

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

const (
	DefaultErrorText = "Ocorreu um erro. Tente novamente."
	NotFoundText     = "Página não encontrada. O endereço acessado não existe."
	NotFoundAction   = "Voltar ao início"
	Placeholder      = "—"

	skeleton = "░░░░░░"
)

// Весь вывод ниже в Telegram HTML (parse_mode=HTML).

// ErrorAlert пустая строка, если баннер скрыт.
func ErrorAlert(visible bool, msg string) string {
	if !visible {
		return ""
	}
	if strings.TrimSpace(msg) == "" {
		msg = DefaultErrorText
	}
	return "⚠️ " + html.EscapeString(msg)
}

// EntityListHeader заголовок списка. AddLabel/OnAdd рисуются кнопкой отдельно.
type EntityListHeader struct {
	Title    string
	Subtitle string
	AddLabel string
	OnAdd    func()
}

func (h EntityListHeader) Render() string {
	var b strings.Builder
	b.WriteString("<b>" + html.EscapeString(h.Title) + "</b>")
	if h.Subtitle != "" {
		b.WriteString("\n<i>" + html.EscapeString(h.Subtitle) + "</i>")
	}
	return b.String()
}

func (h EntityListHeader) Add() {
	if h.OnAdd != nil {
		h.OnAdd()
	}
}

type StatisticCard struct {
	Label   string
	Value   any
	Format  func(any) string
	Extra   string
	Loading bool
}

func (c StatisticCard) Render() string {
	value := skeleton
	if !c.Loading {
		if c.Format != nil {
			value = c.Format(c.Value)
		} else {
			value = fmt.Sprint(c.Value)
		}
	}
	s := html.EscapeString(c.Label) + ": <b>" + html.EscapeString(value) + "</b>"
	if c.Extra != "" && !c.Loading {
		s += "\n   <i>" + html.EscapeString(c.Extra) + "</i>"
	}
	return s
}

type Identifiable interface {
	EntityID() int64
}

type Column[T any] struct {
	Title string
	Right bool
	Value func(rec T, index int) string
}

// Table моноширинная таблица в <pre>. EmptyText выводится вместо пустой таблицы.
type Table[T any] struct {
	Columns   []Column[T]
	EmptyText string
}

func (t Table[T]) Render(rows []T) string {
	if len(rows) == 0 {
		return "<i>" + html.EscapeString(t.EmptyText) + "</i>"
	}

	cells := make([][]string, 0, len(rows)+1)
	head := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		head[i] = c.Title
	}
	cells = append(cells, head)
	for ri, r := range rows {
		line := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			line[i] = c.Value(r, ri)
		}
		cells = append(cells, line)
	}

	width := make([]int, len(t.Columns))
	for _, line := range cells {
		for i, s := range line {
			if n := utf8.RuneCountInString(s); n > width[i] {
				width[i] = n
			}
		}
	}

	var b strings.Builder
	b.WriteString("<pre>")
	for li, line := range cells {
		if li > 0 {
			b.WriteByte('\n')
		}
		for i, s := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", width[i]-utf8.RuneCountInString(s))
			if t.Columns[i].Right {
				b.WriteString(pad + html.EscapeString(s))
			} else if i == len(line)-1 {
				b.WriteString(html.EscapeString(s))
			} else {
				b.WriteString(html.EscapeString(s) + pad)
			}
		}
	}
	b.WriteString("</pre>")
	return b.String()
}

func BuildIDColumn[T Identifiable]() Column[T] {
	return Column[T]{
		Title: "ID",
		Value: func(rec T, _ int) string { return fmt.Sprintf("#%d", rec.EntityID()) },
	}
}

// Actions ячейка действий: редактирование сразу, удаление только после подтверждения.
type Actions[T Identifiable] struct {
	OnEdit      func(T)
	OnDelete    func(id int64)
	DeleteLabel string
}

type ActionCell[T Identifiable] struct {
	rec     T
	actions Actions[T]
}

func BuildActionColumn[T Identifiable](a Actions[T]) func(rec T) ActionCell[T] {
	return func(rec T) ActionCell[T] { return ActionCell[T]{rec: rec, actions: a} }
}

func (c ActionCell[T]) Record() T { return c.rec }

func (c ActionCell[T]) Edit() {
	if c.actions.OnEdit != nil {
		c.actions.OnEdit(c.rec)
	}
}

func (c ActionCell[T]) Delete() Confirm {
	id := c.rec.EntityID()
	return Confirm{
		Title:       "Excluir " + c.actions.DeleteLabel,
		Description: "Tem certeza que deseja excluir este " + c.actions.DeleteLabel + "?",
		OkText:      "Sim",
		CancelText:  "Não",
		onYes: func() {
			if c.actions.OnDelete != nil {
				c.actions.OnDelete(id)
			}
		},
	}
}

// Confirm двухшаговое подтверждение. No ничего не делает.
type Confirm struct {
	Title       string
	Description string
	OkText      string
	CancelText  string

	onYes func()
}

func (c Confirm) Yes() {
	if c.onYes != nil {
		c.onYes()
	}
}

func (c Confirm) No() {}

func (c Confirm) Render() string {
	return "<b>" + html.EscapeString(c.Title) + "</b>\n" + html.EscapeString(c.Description)
}
