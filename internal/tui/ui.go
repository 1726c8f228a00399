// Package tui is the terminal front end of the reading form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cosmic_insights_backend/internal/form"
	"cosmic_insights_backend/platform/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// UI renders one form.Session in the terminal.
type UI struct {
	app     *tview.Application
	session *form.Session
	log     *logger.Logger
	reveal  revealer

	mu      sync.Mutex
	loading bool

	form    *tview.Form
	place   *tview.InputField
	reading *tview.TextView
	status  *tview.TextView
}

func New(session *form.Session, log *logger.Logger) *UI {
	u := &UI{
		app:     tview.NewApplication(),
		session: session,
		log:     log,
	}
	u.build()
	return u
}

// Run blocks until the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		u.app.Stop()
	}()

	u.session.Observe(func(s form.State) {
		// Keystrokes are rendered by the widgets; only the switch into
		// Submitting needs a redraw from here.
		if u.enteredLoading(s) {
			u.app.QueueUpdateDraw(func() { u.beginSubmit(s) })
		}
	})

	u.form.GetButton(0).SetSelectedFunc(func() { u.submit(ctx) })

	return u.app.SetRoot(u.layout(), true).SetFocus(u.form).Run()
}

func (u *UI) build() {
	u.form = tview.NewForm()
	u.form.SetBorder(true).SetTitle(" Cosmic Insights ")

	u.form.AddInputField(form.FieldName.String(), "", 40, nil, u.changed(form.FieldName))
	u.form.AddInputField(form.FieldDateOfBirth.String()+" (YYYY-MM-DD)", "", 12, tview.InputFieldMaxLength(10), u.changed(form.FieldDateOfBirth))
	u.form.AddInputField(form.FieldTimeOfBirth.String()+" (HH:MM)", "", 7, tview.InputFieldMaxLength(5), u.changed(form.FieldTimeOfBirth))

	u.place = tview.NewInputField().
		SetLabel(form.FieldPlaceOfBirth.String()).
		SetFieldWidth(40).
		SetChangedFunc(u.changed(form.FieldPlaceOfBirth))
	u.place.SetAutocompleteFunc(func(text string) []string {
		return placeEntries(u.session.Dispatch(form.FieldChanged{Field: form.FieldPlaceOfBirth, Value: text}))
	})
	u.place.SetAutocompletedFunc(func(text string, index, source int) bool {
		if source == tview.AutocompletedNavigate {
			return false
		}
		u.place.SetText(text)
		u.session.Dispatch(form.PlaceSelected{Place: text})
		return true
	})
	u.form.AddFormItem(u.place)

	u.form.AddTextArea(form.FieldQuestion.String(), "", 40, 3, 0, u.changed(form.FieldQuestion))
	u.form.AddButton(form.SubmitLabel(u.session.State()), nil)

	u.reading = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	u.reading.SetBorder(true).SetTitle(" Reading ")

	u.status = tview.NewTextView().SetDynamicColors(true)

	u.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			u.app.Stop()
			return nil
		}
		return event
	})
}

func (u *UI) layout() tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.form, 17, 0, true).
		AddItem(u.status, 1, 0, false).
		AddItem(u.reading, 0, 1, false)
}

func (u *UI) changed(f form.Field) func(string) {
	return func(text string) {
		u.session.Dispatch(form.FieldChanged{Field: f, Value: text})
	}
}

func (u *UI) submit(ctx context.Context) {
	if u.session.State().Loading() {
		return
	}

	go func() {
		s, err := u.session.Submit(ctx)
		if err != nil {
			u.log.Debug("submit refused", "error", err)
		}
		u.app.QueueUpdateDraw(func() { u.settle(s, err) })
	}()
}

func (u *UI) enteredLoading(s form.State) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	entered := s.Loading() && !u.loading
	u.loading = s.Loading()
	return entered
}

// beginSubmit drops the previous reading once a submit is accepted.
func (u *UI) beginSubmit(s form.State) {
	u.reveal.Cancel()
	u.reading.Clear()
	u.renderStatus(s)
}

// settle renders the outcome of a submit. It runs on the UI goroutine.
func (u *UI) settle(s form.State, err error) {
	u.renderStatus(s)
	if err != nil {
		u.status.SetText("[red]" + tview.Escape(submitError(s, err)))
		return
	}

	if reason, ok := s.Failure(); ok {
		u.log.Warn("prediction failed", "reason", reason)
		u.status.SetText("[red]" + tview.Escape(reason))
		return
	}

	if text, ok := s.Reading(); ok {
		u.reveal.Start(form.Paragraphs(text), func(gen uint64, p form.Paragraph) {
			u.app.QueueUpdateDraw(func() {
				if u.reveal.Current(gen) {
					_, _ = fmt.Fprintln(u.reading, tview.Escape(p.Text))
				}
			})
		})
	}
}

func (u *UI) renderStatus(s form.State) {
	u.form.GetButton(0).SetLabel(form.SubmitLabel(s))
	if s.Loading() {
		u.status.SetText("[yellow]" + form.SubmitLabel(s))
	} else {
		u.status.Clear()
	}
}

// placeEntries is the autocomplete list for s, nil when it is hidden.
func placeEntries(s form.State) []string {
	if !s.Places.Visible {
		return nil
	}
	return s.Places.Suggestions
}

func submitError(s form.State, err error) string {
	if errors.Is(err, form.ErrIncomplete) {
		names := make([]string, 0, len(form.Fields))
		for _, f := range s.Query.Missing() {
			names = append(names, f.String())
		}
		return "Please fill in: " + strings.Join(names, ", ")
	}
	if errors.Is(err, form.ErrSubmitInFlight) {
		return form.SubmitLabel(s)
	}
	return err.Error()
}
