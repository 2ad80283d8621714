package cli

import (
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/models"
)

// runForm is replaced in tests
var runForm = func(f *huh.Form) error {
	return f.Run()
}

// errCancelled means the user backed out of a prompt
var errCancelled = stderrors.New("cancelled")

func formError(err error) error {
	if stderrors.Is(err, huh.ErrUserAborted) {
		return errCancelled
	}
	return err
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return stderrors.New("required")
	}
	return nil
}

// promptText asks for a non-empty value. what names it in the error shown
// when prompting is not possible.
func promptText(ctx *Context, title, what string) (string, error) {
	if !ctx.Interactive {
		return "", errors.InvalidArgumentf("%s is required", what)
	}
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Value(&value).Validate(required),
	))
	if err := runForm(form); err != nil {
		return "", formError(err)
	}
	return strings.TrimSpace(value), nil
}

// promptMood lets the user pick a mood and type an optional note
func promptMood(ctx *Context) (models.Mood, string, error) {
	if !ctx.Interactive {
		return 0, "", errors.InvalidArgumentf("mood is required (1-5, a name or an emoji)")
	}

	var options []huh.Option[models.Mood]
	for _, m := range models.AllMoods() {
		options = append(options, huh.NewOption(m.Emoji()+"  "+m.String(), m))
	}

	mood := models.MoodNeutral
	var note string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[models.Mood]().
			Title("How are you feeling?").
			Options(options...).
			Value(&mood),
		huh.NewInput().
			Title("Note (optional)").
			Value(&note),
	))
	if err := runForm(form); err != nil {
		return 0, "", formError(err)
	}
	return mood, note, nil
}

// confirm asks a yes/no question. Without a terminal it refuses, so
// destructive commands need their --yes flag in scripts.
func confirm(ctx *Context, title string) (bool, error) {
	if !ctx.Interactive {
		return false, errors.InvalidArgumentf("confirmation required, pass --yes")
	}
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
	))
	if err := runForm(form); err != nil {
		if stderrors.Is(formError(err), errCancelled) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// cancelledIsNil reports a backed-out prompt and swallows it
func cancelledIsNil(ctx *Context, err error) error {
	if stderrors.Is(err, errCancelled) {
		ctx.Println("Cancelled.")
		return nil
	}
	return err
}
