package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"
	"github.com/yukikurage/list-task-api/internal/models"
	"github.com/yukikurage/list-task-api/internal/repository"
)

// MaxSuggestedTasks caps how many suggestions are returned per request.
const MaxSuggestedTasks = 20

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIServiceUnavailable   = errors.New("AI service is temporarily unavailable")
	ErrSuggestionTextRequired = errors.New("text is required")
)

// ChatCompleter is the part of *openai.Client the AI service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// BreakerSettings configures the circuit breaker around the OpenAI client.
type BreakerSettings struct {
	MaxFailures int
	Timeout     time.Duration
}

type AIService struct {
	client  ChatCompleter
	breaker *gobreaker.CircuitBreaker[openai.ChatCompletionResponse]
}

// NewAIService wraps client with a circuit breaker that opens after
// settings.MaxFailures consecutive failures.
func NewAIService(client ChatCompleter, settings BreakerSettings, logger *slog.Logger) *AIService {
	breaker := gobreaker.NewCircuitBreaker[openai.ChatCompletionResponse](gobreaker.Settings{
		Name:    "openai",
		Timeout: settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &AIService{
		client:  client,
		breaker: breaker,
	}
}

// NewOpenAIService builds an AIService talking to the OpenAI API.
func NewOpenAIService(apiKey string, settings BreakerSettings, logger *slog.Logger) *AIService {
	return NewAIService(openai.NewClient(apiKey), settings, logger)
}

type suggestedTask struct {
	Name string `json:"name"`
}

// SuggestTaskNames asks the model to break text down into short task names
// for the list named listName.
func (s *AIService) SuggestTaskNames(ctx context.Context, listName, text string) ([]string, error) {
	prompt := fmt.Sprintf(`You extract concrete to-do items from free text for the list %q.

Text:
%s

Reply with a JSON array only, no prose:
[
  {"name": "short task name"}
]

Return [] when the text contains no tasks.`, listName, text)

	resp, err := s.breaker.Execute(func() (openai.ChatCompletionResponse, error) {
		return s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrAIServiceUnavailable
		}
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []suggestedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		name := strings.TrimSpace(task.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) == MaxSuggestedTasks {
			break
		}
	}
	return names, nil
}

// SuggestionService proposes task names for an existing list. Suggestions
// are not stored.
type SuggestionService struct {
	lists repository.Collection[models.List]
	ai    *AIService
}

// NewSuggestionService creates a SuggestionService. ai may be nil when no
// API key is configured.
func NewSuggestionService(store *repository.Store, ai *AIService) *SuggestionService {
	return &SuggestionService{
		lists: store.Lists,
		ai:    ai,
	}
}

// SuggestTasks returns task names extracted from text for the list named
// listName. The result is empty, not nil, when the model finds nothing.
func (s *SuggestionService) SuggestTasks(ctx context.Context, listName, text string) ([]string, error) {
	if s.ai == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrSuggestionTextRequired
	}

	if _, err := s.lists.FindOne(ctx, repository.Filter{models.ColumnName: listName}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}

	return s.ai.SuggestTaskNames(ctx, listName, text)
}
