package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

// AssistantService answers career questions from candidates and companies,
// grounding the prompt in the asker's profile when one exists.
type AssistantService struct {
	aiClient aiClient
	profiles profileReader
}

func NewAssistantService(aiClient aiClient, profiles profileReader) *AssistantService {
	return &AssistantService{aiClient: aiClient, profiles: profiles}
}

func (a *AssistantService) Ask(ctx context.Context, actor models.Actor, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.Wrap(models.ErrInvalidState, "empty question")
	}

	profile, err := a.profiles.GetByID(ctx, actor.ID)
	if err != nil {
		return "", errors.Wrap(err, "failed to load profile")
	}

	response, err := a.aiClient.GenerateResponse(ctx, a.buildPrompt(actor, profile, question))
	if err != nil {
		return "", errors.Wrap(err, "assistant request failed")
	}
	return strings.TrimSpace(response), nil
}

func (a *AssistantService) buildPrompt(actor models.Actor, profile *models.Profile, question string) string {
	var b strings.Builder

	b.WriteString("You are a career assistant for an inclusive tech job platform ")
	b.WriteString("focused on women and LGBTQIA+ professionals. ")
	if actor.IsCompany() {
		b.WriteString("The user represents a hiring company. ")
	} else {
		b.WriteString("The user is a job candidate. ")
	}

	if profile != nil {
		fmt.Fprintf(&b, "About the user: %v from %v, %v. %v ",
			profile.FullName, profile.City, profile.State, profile.About)
	}

	b.WriteString("Answer helpfully and concisely. Question: ")
	b.WriteString(question)
	return b.String()
}
