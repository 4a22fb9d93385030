package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/khel-store/khel/internal/api"
)

// Credentials is the transient phone/password pair collected from the
// terminal. It is used once as a request payload and never persisted.
type Credentials struct {
	PhoneNumber string
	Password    string
}

// CredentialsForm collects login credentials interactively. The password
// input is masked.
func CredentialsForm() (Credentials, error) {
	var creds Credentials

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Phone number").
			Placeholder("10-digit phone number").
			Validate(validatePhone).
			Value(&creds.PhoneNumber),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(required("password")).
			Value(&creds.Password),
	))

	if err := form.Run(); err != nil {
		return Credentials{}, fmt.Errorf("prompt failed: %w", err)
	}

	return creds, nil
}

// Registration is the payload collected for account creation.
type Registration struct {
	Name        string
	PhoneNumber string
	Password    string
}

// RegistrationForm collects registration details interactively.
func RegistrationForm() (Registration, error) {
	var reg Registration

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Validate(required("name")).
			Value(&reg.Name),
		huh.NewInput().
			Title("Phone number").
			Placeholder("10-digit phone number").
			Validate(validatePhone).
			Value(&reg.PhoneNumber),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(required("password")).
			Value(&reg.Password),
	))

	if err := form.Run(); err != nil {
		return Registration{}, fmt.Errorf("prompt failed: %w", err)
	}

	return reg, nil
}

// GameForm collects a new catalog entry interactively.
func GameForm() (api.GameInput, error) {
	var (
		input                                       api.GameInput
		price, minPlayer, maxPlayer, duration, mult string
	)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Validate(required("name")).Value(&input.Name),
		huh.NewInput().Title("Description").Value(&input.Description),
		huh.NewInput().Title("Price (₹)").Validate(validateAmount).Value(&price),
		huh.NewInput().Title("Min players").Validate(validateInt).Value(&minPlayer),
		huh.NewInput().Title("Max players").Validate(validateInt).Value(&maxPlayer),
		huh.NewInput().Title("Duration (minutes)").Validate(validateInt).Value(&duration),
		huh.NewInput().Title("Players multiple of").Validate(validateInt).Value(&mult),
		huh.NewInput().Title("GIF URL").Value(&input.GifURL),
	))

	if err := form.Run(); err != nil {
		return api.GameInput{}, fmt.Errorf("prompt failed: %w", err)
	}

	input.Price, _ = strconv.ParseFloat(price, 64)
	input.MinPlayer, _ = strconv.Atoi(minPlayer)
	input.MaxPlayer, _ = strconv.Atoi(maxPlayer)
	input.Duration, _ = strconv.Atoi(duration)
	input.MultipleOf, _ = strconv.Atoi(mult)

	return input, nil
}

// ConfirmDeletion displays a yes/no confirmation for a destructive admin
// operation. Defaults to no.
func ConfirmDeletion(what string) (bool, error) {
	confirmed := false

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", what)).
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePhone(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 10 {
		return fmt.Errorf("phone number must be 10 digits")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone number must contain only digits")
		}
	}
	return nil
}

func validateAmount(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a valid amount")
	}
	return nil
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}
