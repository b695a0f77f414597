package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrSnakeDoc/statuspage/internal/client"
	"github.com/MrSnakeDoc/statuspage/internal/domain"
)

// Credentials collected by the login form.
type Credentials struct {
	Username string
	Password string
}

// Prompter asks the user for input.
type Prompter interface {
	Login(c *Credentials) error
	ServiceForm(f *client.ServiceForm) error
	Confirm(title string) (bool, error)
}

type huhPrompter struct{}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func (huhPrompter) Login(c *Credentials) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Admin Login"),
			huh.NewInput().
				Title("Username").
				Value(&c.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(required("password")),
		),
	).Run()
}

func (huhPrompter) ServiceForm(f *client.ServiceForm) error {
	title := "Add Service"
	if f.IsEdit() {
		title = "Edit Service"
	}
	if f.Status == "" {
		f.Status = domain.StatusOperational
	}

	options := make([]huh.Option[domain.Status], 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		options = append(options, huh.NewOption(s.String(), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Description").
				Value(&f.Description),
			huh.NewSelect[domain.Status]().
				Title("Status").
				Options(options...).
				Value(&f.Status),
		),
	).Run()
}

func (huhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	return ok, err
}
