// Package interactive provides terminal user interface components
package interactive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// MenuOption represents a menu item with its associated action
type MenuOption struct {
	Name        string
	Description string
	Action      func() error
}

var (
	// ErrExit is returned when the user leaves the menu
	ErrExit = errors.New("exit")
	// ErrInvalidSelection is returned when an invalid menu option is selected
	ErrInvalidSelection = errors.New("invalid selection")
)

// QuitLabel is the last entry of every menu.
const QuitLabel = "Quit - Leave nso-version-check"

const menuPageSize = 10

// Menu is a single-choice list of actions with a trailing quit entry.
type Menu struct {
	Message string
	Options []MenuOption
}

// labels returns the displayed choices, quit last, and the option behind each label.
func (m *Menu) labels() ([]string, map[string]MenuOption) {
	labels := make([]string, 0, len(m.Options)+1)
	byLabel := make(map[string]MenuOption, len(m.Options))

	for _, opt := range m.Options {
		label := opt.Name
		if opt.Description != "" {
			label = fmt.Sprintf("%s - %s", opt.Name, opt.Description)
		}

		labels = append(labels, label)
		byLabel[label] = opt
	}

	return append(labels, QuitLabel), byLabel
}

// Run asks for one choice and runs its action. Quitting or interrupting the prompt returns ErrExit.
func (m *Menu) Run() error {
	labels, byLabel := m.labels()

	var selected string
	if err := survey.AskOne(&survey.Select{
		Message:  m.Message,
		Options:  labels,
		PageSize: menuPageSize,
	}, &selected); err != nil || selected == QuitLabel {
		return ErrExit
	}

	opt, ok := byLabel[selected]
	if !ok {
		return ErrInvalidSelection
	}

	return opt.Action()
}

// ShowMainMenu runs the main menu once.
func ShowMainMenu(options []MenuOption) error {
	menu := &Menu{Message: "Which check would you like to run?", Options: options}

	return menu.Run()
}

// Input asks for a required line of text, offering defaultValue.
func Input(message, defaultValue string) (string, error) {
	var answer string

	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}

	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}

	return answer, nil
}

// PauseForEnter blocks until a line is read from stdin.
func PauseForEnter() {
	waitForLine(os.Stdin, os.Stdout)
}

func waitForLine(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "\nPress Enter to return to the menu...")

	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil || (n == 1 && buf[0] == '\n') {
			break
		}
	}

	fmt.Fprintln(out)
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(message string) bool {
	var confirmed bool

	_ = survey.AskOne(&survey.Confirm{Message: message}, &confirmed)

	return confirmed
}
