package services

import (
	"context"
	"testing"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerRepo struct {
	answers map[string]*models.Answer
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[string]*models.Answer)}
}

func (f *fakeAnswerRepo) Create(ctx context.Context, answer *models.Answer) error {
	f.answers[answer.ID] = answer
	return nil
}

func (f *fakeAnswerRepo) ListByCouple(ctx context.Context, coupleID string) ([]*models.Answer, error) {
	var out []*models.Answer
	for _, a := range f.answers {
		if a.CoupleID == coupleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnswerRepo) Delete(ctx context.Context, coupleID, answerID string) error {
	a, ok := f.answers[answerID]
	if !ok || a.CoupleID != coupleID {
		return repository.ErrNotFound
	}
	delete(f.answers, answerID)
	return nil
}

func activeCoupleRepo(coupleID string) *fakeCoupleRepo {
	return &fakeCoupleRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) {
			return id == coupleID, nil
		},
	}
}

func TestSubmitAnswer(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, activeCoupleRepo("alice_bob"))

	answer, err := svc.Submit(context.Background(), "alice_bob", "alice",
		"Какой твой идеальный выходной?", "Весь день на диване с тобой")
	require.NoError(t, err)
	assert.NotEmpty(t, answer.ID)
	assert.Equal(t, "alice_bob", answer.CoupleID)
	assert.Equal(t, "alice", answer.UserID)
	assert.False(t, answer.Date.IsZero())
	assert.Len(t, repo.answers, 1)
}

func TestSubmitAnswerValidation(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, activeCoupleRepo("alice_bob"))

	_, err := svc.Submit(context.Background(), "alice_bob", "alice", "", "ответ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Submit(context.Background(), "alice_bob", "alice", "вопрос", "")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Submit(context.Background(), "ghost_couple", "alice", "вопрос", "ответ")
	assert.ErrorIs(t, err, ErrNoCouple)

	assert.Empty(t, repo.answers)
}

func TestAnswerHistoryEmpty(t *testing.T) {
	svc := NewAnswerService(newFakeAnswerRepo(), activeCoupleRepo("alice_bob"))

	history, err := svc.History(context.Background(), "alice_bob")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestDeleteAnswerScopedToCouple(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, activeCoupleRepo("alice_bob"))

	answer, err := svc.Submit(context.Background(), "alice_bob", "alice", "вопрос", "ответ")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "mallory_trent", answer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), "alice_bob", answer.ID))
	assert.Empty(t, repo.answers)
}
