// Package prompt wraps interactive terminal forms. Every function maps a
// user abort to faults.ErrPromptCancelled so the pipeline treats it as a
// safe cancellation.
package prompt

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/types"
)

func mapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return faults.ErrPromptCancelled
	}
	return err
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	var answer bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&answer),
	))
	if err := form.Run(); err != nil {
		return false, mapAbort(err)
	}
	return answer, nil
}

// Input asks for a single line of text.
func Input(title, placeholder string) (string, error) {
	var answer string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Placeholder(placeholder).Value(&answer),
	))
	if err := form.Run(); err != nil {
		return "", mapAbort(err)
	}
	return answer, nil
}

// Password asks for a secret, masking the input.
func Password(title string) (string, error) {
	var answer string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(&answer),
	))
	if err := form.Run(); err != nil {
		return "", mapAbort(err)
	}
	return answer, nil
}

// SelectStatus picks one application status from the lifecycle.
func SelectStatus(title string, current types.ApplicationStatus) (types.ApplicationStatus, error) {
	options := make([]huh.Option[string], 0, len(types.Statuses()))
	for _, s := range types.Statuses() {
		options = append(options, huh.NewOption(string(s), string(s)))
	}
	selected := string(current)
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(options...).Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", mapAbort(err)
	}
	status, ok := types.ParseStatus(selected)
	if !ok {
		return "", faults.NewCLI("Invalid status selected", "prompt:selectStatus")
	}
	return status, nil
}

// SelectJob picks one job from a list, labelled by status, title, company
// and location.
func SelectJob(title string, jobs []types.JobApplication) (*types.JobApplication, error) {
	byID := make(map[int64]*types.JobApplication, len(jobs))
	options := make([]huh.Option[int64], 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		byID[j.JobID] = j
		label := fmt.Sprintf("[%s] - %s, %s @ %s", j.ApplicationStatus, j.Title, j.CompanyName, j.Location())
		options = append(options, huh.NewOption(label, j.JobID))
	}

	var selected int64
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().Title(title).Options(options...).Value(&selected),
	))
	if err := form.Run(); err != nil {
		return nil, mapAbort(err)
	}
	return byID[selected], nil
}

// SearchAction is what the search flow can do with a picked job.
type SearchAction string

const (
	ActionCopyID   SearchAction = "Copy job id"
	ActionCopyLink SearchAction = "Copy application link"
	ActionEdit     SearchAction = "Edit details"
	ActionDone     SearchAction = "Nothing, I'm done"
)

// SelectAction picks what to do with a job chosen from search results.
func SelectAction(title string) (SearchAction, error) {
	options := []huh.Option[string]{
		huh.NewOption(string(ActionCopyID), string(ActionCopyID)),
		huh.NewOption(string(ActionCopyLink), string(ActionCopyLink)),
		huh.NewOption(string(ActionEdit), string(ActionEdit)),
		huh.NewOption(string(ActionDone), string(ActionDone)),
	}
	selected := string(ActionDone)
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(options...).Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", mapAbort(err)
	}
	return SearchAction(selected), nil
}

// ApplicationDetails is what the apply flow collects from the user.
type ApplicationDetails struct {
	Referral  string
	AppMethod types.AppMethod
	Link      string
}

// ApplicationInfo collects how the application was submitted.
func ApplicationInfo(defaultLink string) (*ApplicationDetails, error) {
	var (
		referral string
		method   = string(types.MethodLinkedin)
		link     = defaultLink
	)
	methodOptions := []huh.Option[string]{
		huh.NewOption(string(types.MethodLinkedin), string(types.MethodLinkedin)),
		huh.NewOption(string(types.MethodPortal), string(types.MethodPortal)),
		huh.NewOption(string(types.MethodOther), string(types.MethodOther)),
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Referral (leave blank if none)").
			Value(&referral),
		huh.NewSelect[string]().
			Title("How did you apply?").
			Options(methodOptions...).
			Value(&method),
		huh.NewInput().
			Title("Application link").
			Value(&link),
	))
	if err := form.Run(); err != nil {
		return nil, mapAbort(err)
	}

	return &ApplicationDetails{
		Referral:  referral,
		AppMethod: types.AppMethod(method),
		Link:      link,
	}, nil
}

// EditJob shows a prefilled form for the job's editable fields and returns
// only what changed.
func EditJob(j *types.JobApplication) (*types.UpdateDetails, error) {
	var (
		title    = j.Title
		company  = j.CompanyName
		city     = j.LocationCity
		country  = j.LocationCountry
		referral = j.Referral
		link     = j.ApplicationLink
		method   = string(j.AppMethod)
	)
	methodOptions := []huh.Option[string]{
		huh.NewOption(string(types.MethodLinkedin), string(types.MethodLinkedin)),
		huh.NewOption(string(types.MethodPortal), string(types.MethodPortal)),
		huh.NewOption(string(types.MethodOther), string(types.MethodOther)),
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&title),
		huh.NewInput().Title("Company").Value(&company),
		huh.NewInput().Title("City").Value(&city),
		huh.NewInput().Title("Country").Value(&country),
		huh.NewInput().Title("Referral").Value(&referral),
		huh.NewSelect[string]().Title("Application method").Options(methodOptions...).Value(&method),
		huh.NewInput().Title("Application link").Value(&link),
	))
	if err := form.Run(); err != nil {
		return nil, mapAbort(err)
	}

	update := &types.UpdateDetails{}
	setIfChanged := func(dst **string, old, cur string) {
		if cur != old {
			v := cur
			*dst = &v
		}
	}
	setIfChanged(&update.Title, j.Title, title)
	setIfChanged(&update.CompanyName, j.CompanyName, company)
	setIfChanged(&update.LocationCity, j.LocationCity, city)
	setIfChanged(&update.LocationCountry, j.LocationCountry, country)
	setIfChanged(&update.Referral, j.Referral, referral)
	setIfChanged(&update.ApplicationLink, j.ApplicationLink, link)
	if method != string(j.AppMethod) {
		m := types.AppMethod(method)
		update.AppMethod = &m
	}
	return update, nil
}
