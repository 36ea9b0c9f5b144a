// Package menu drives the interactive prompt session.
//
// The session is a state machine. Every screen is one state; each step renders
// its screen, waits for input, and names the next state. Mistakes in user input
// (unknown menu choice, bad ID) are reported on the main menu. Only store
// failures end the session with an error.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jackzampolin/promptgen/internal/clipboard"
	"github.com/jackzampolin/promptgen/internal/prompt"
	"github.com/jackzampolin/promptgen/internal/repository"
)

// State is a screen of the interactive session.
type State int

const (
	MainMenu State = iota
	Creating
	Browsing
	Viewing
	Editing
	Deleting
	Exited
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "main_menu"
	case Creating:
		return "creating"
	case Browsing:
		return "browsing"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Deleting:
		return "deleting"
	case Exited:
		return "exited"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Menu texts.
const (
	Banner            = "Welcome to the AI Chatbot Prompt Generator!"
	Farewell          = "Exiting the application. Goodbye!"
	LabelChoice       = "Enter your choice (1/2/3)"
	LabelSelectID     = "Select a prompt by ID to view, edit, or delete"
	LabelAction       = "Would you like to (E)dit, (D)elete, or (V)iew again? (E/D/V)"
	LabelConfirmDel   = "Are you sure you want to delete this prompt?"
	MsgInvalidChoice  = "Invalid choice. Please select 1, 2, or 3."
	MsgNoPrompts      = "No saved prompts found."
	MsgSaved          = "Prompt saved successfully!"
	MsgUpdated        = "Prompt updated successfully!"
	MsgDeleted        = "Prompt deleted successfully!"
	MsgDeleteCanceled = "Prompt was not deleted."
	MsgCopied         = "Prompt copied to clipboard!"
	TableTitle        = "Saved Prompts"
)

// UI is the console the session reads from and renders to.
type UI interface {
	prompt.Prompter
	Clear()
	Println(a ...any)
	Printf(format string, a ...any)
	Table(title string, headers []string, rows [][]string)
}

// Settings are read before every use, so they may change while the session runs.
type Settings struct {
	Pause       time.Duration // wait after the empty-collection notice
	ClearScreen bool
	Clipboard   bool // copy viewed prompts
	Indent      int  // JSON indent of the copied prompt
}

// DefaultSettings matches the config defaults.
func DefaultSettings() Settings {
	return Settings{
		Pause:       5 * time.Second,
		ClearScreen: true,
		Clipboard:   true,
		Indent:      4,
	}
}

// Options configures a Controller. Repo and UI are required.
type Options struct {
	Repo      *repository.Repository
	UI        UI
	Clipboard clipboard.Writer
	Settings  func() Settings
	Sleep     func(ctx context.Context, d time.Duration)
	Logger    *slog.Logger
}

// Controller runs one interactive session. It owns the repository for the
// lifetime of the session.
type Controller struct {
	repo     *repository.Repository
	ui       UI
	clip     clipboard.Writer
	settings func() Settings
	sleep    func(ctx context.Context, d time.Duration)
	logger   *slog.Logger
	state    State
	selected int
	notices  []string
}

// New creates a controller in the MainMenu state.
func New(opts Options) *Controller {
	c := &Controller{
		repo:     opts.Repo,
		ui:       opts.UI,
		clip:     opts.Clipboard,
		settings: opts.Settings,
		sleep:    opts.Sleep,
		logger:   opts.Logger,
		state:    MainMenu,
	}
	if c.clip == nil {
		c.clip = clipboard.Discard{}
	}
	if c.settings == nil {
		c.settings = DefaultSettings
	}
	if c.sleep == nil {
		c.sleep = sleep
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Notify queues a message for the next main menu screen.
func (c *Controller) Notify(msg string) {
	c.notices = append(c.notices, msg)
}

// Run steps through states until the user exits. It returns nil on a normal
// exit or when input ends, and an error when the store fails or ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	for c.state != Exited {
		next, err := c.step(ctx)
		if errors.Is(err, io.EOF) {
			c.ui.Println()
			c.ui.Println(Farewell)
			next, err = Exited, nil
		}
		if err != nil {
			return err
		}
		if next != c.state {
			c.logger.Debug("menu transition", "from", c.state, "to", next)
		}
		c.state = next
	}
	return nil
}

func (c *Controller) step(ctx context.Context) (State, error) {
	switch c.state {
	case MainMenu:
		return c.mainMenu(ctx)
	case Creating:
		return c.create(ctx)
	case Browsing:
		return c.browse(ctx)
	case Viewing:
		return c.view(ctx)
	case Editing:
		return c.edit(ctx)
	case Deleting:
		return c.delete(ctx)
	}
	return Exited, fmt.Errorf("unknown state %s", c.state)
}

func (c *Controller) mainMenu(ctx context.Context) (State, error) {
	c.clear()
	c.ui.Println(Banner)
	for _, n := range c.notices {
		c.ui.Println(n)
	}
	c.notices = nil

	c.ui.Println("Please choose an option:")
	c.ui.Println("1. Create New Prompt")
	c.ui.Println("2. View Saved Prompts")
	c.ui.Println("3. Exit Application")

	choice, err := c.ui.Ask(ctx, LabelChoice)
	if err != nil {
		return MainMenu, err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return Creating, nil
	case "2":
		return Browsing, nil
	case "3":
		c.ui.Println(Farewell)
		return Exited, nil
	}
	c.Notify(MsgInvalidChoice)
	return MainMenu, nil
}

func (c *Controller) create(ctx context.Context) (State, error) {
	c.clear()
	c.ui.Println("Creating a New Prompt for AI Chatbot:")

	in, err := prompt.Collect(ctx, c.ui)
	if err != nil {
		return Creating, err
	}

	if err := c.repo.Add(ctx, prompt.Build(in)); err != nil {
		return Creating, err
	}
	c.Notify(MsgSaved)
	c.notifySaved()
	return MainMenu, nil
}

func (c *Controller) browse(ctx context.Context) (State, error) {
	c.clear()
	if c.repo.Len() == 0 {
		c.ui.Println(MsgNoPrompts)
		c.sleep(ctx, c.settings().Pause)
		return MainMenu, ctx.Err()
	}

	rows := make([][]string, 0, c.repo.Len())
	for id, summary := range c.repo.List() {
		rows = append(rows, []string{fmt.Sprint(id), summary})
	}
	c.ui.Table(TableTitle, []string{"ID", "Base Question"}, rows)

	raw, err := c.ui.Ask(ctx, LabelSelectID)
	if err != nil {
		return Browsing, err
	}

	id, _, err := c.repo.Lookup(raw)
	if err != nil {
		c.reportLookup(err)
		return MainMenu, nil
	}
	c.selected = id
	return Viewing, nil
}

func (c *Controller) view(ctx context.Context) (State, error) {
	rec, err := c.repo.Get(c.selected)
	if err != nil {
		c.reportLookup(err)
		return MainMenu, nil
	}

	c.ui.Println("Selected Prompt Details:")
	for _, f := range rec.Fields() {
		c.ui.Printf("%s: %s\n", f, rec.Value(f))
	}
	c.export(rec)

	action, err := c.ui.Ask(ctx, LabelAction)
	if err != nil {
		return Viewing, err
	}

	switch strings.ToUpper(strings.TrimSpace(action)) {
	case "E":
		return Editing, nil
	case "D":
		return Deleting, nil
	case "V":
		c.clear()
		return Viewing, nil
	}
	return MainMenu, nil
}

// export copies the record to the clipboard. Failures are reported and ignored.
func (c *Controller) export(rec prompt.Record) {
	settings := c.settings()
	if !settings.Clipboard {
		return
	}

	data, err := rec.MarshalIndent(settings.Indent)
	if err == nil {
		err = c.clip.Copy(string(data))
	}
	if err != nil {
		c.logger.Warn("clipboard export failed", "id", c.selected, "error", err)
		c.ui.Printf("Could not copy prompt to clipboard: %v\n", err)
		return
	}
	c.ui.Println(MsgCopied)
}

func (c *Controller) edit(ctx context.Context) (State, error) {
	rec, err := c.repo.Get(c.selected)
	if err != nil {
		c.reportLookup(err)
		return MainMenu, nil
	}

	c.clear()
	c.ui.Println("Editing Prompt:")
	if rec.Has(prompt.FieldSteps) {
		c.ui.Printf("Separate steps with %q.\n", prompt.StepSeparator)
	}

	updates := make(map[prompt.Field]string, len(rec.Fields()))
	for _, f := range rec.Fields() {
		label := fmt.Sprintf("Edit %s (leave blank to keep current value: %s)", f, rec.Value(f))
		value, err := c.ui.Ask(ctx, label)
		if err != nil {
			return Editing, err
		}
		updates[f] = value
	}

	if err := c.repo.Update(ctx, c.selected, updates); err != nil {
		return Editing, err
	}
	c.Notify(MsgUpdated)
	c.notifySaved()
	return MainMenu, nil
}

func (c *Controller) delete(ctx context.Context) (State, error) {
	c.clear()
	c.ui.Println("Deleting Prompt:")

	ok, err := c.ui.Confirm(ctx, LabelConfirmDel)
	if err != nil {
		return Deleting, err
	}
	if !ok {
		c.Notify(MsgDeleteCanceled)
		return MainMenu, nil
	}

	if err := c.repo.Delete(ctx, c.selected); err != nil {
		if errors.Is(err, repository.ErrOutOfRange) {
			c.reportLookup(err)
			return MainMenu, nil
		}
		return Deleting, err
	}
	c.selected = 0
	c.Notify(MsgDeleted)
	c.notifySaved()
	return MainMenu, nil
}

func (c *Controller) reportLookup(err error) {
	switch {
	case errors.Is(err, repository.ErrNotANumber):
		c.Notify("Please enter a valid number.")
	case errors.Is(err, repository.ErrOutOfRange):
		c.Notify("Invalid ID selected.")
	default:
		c.Notify(err.Error())
	}
	c.logger.Debug("prompt lookup failed", "error", err)
}

func (c *Controller) notifySaved() {
	c.Notify(fmt.Sprintf("Prompts saved to %s successfully!", c.repo.Path()))
}

func (c *Controller) clear() {
	if c.settings().ClearScreen {
		c.ui.Clear()
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
