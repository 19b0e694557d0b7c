package database

import (
	"errors"
	"os"

	"github.com/purdeep/studio-backend/models"
)

const messagesDocument = "messages.json"

type MessageRepo struct {
	store *Store
}

func NewMessageRepo(store *Store) *MessageRepo {
	return &MessageRepo{store}
}

// FindAll returns the message collection, newest first. A missing document
// reads as an empty collection.
func (r *MessageRepo) FindAll() ([]models.Message, error) {
	var messages []models.Message
	err := r.store.load(messagesDocument, &messages)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Prepend stores a new message at the head of the collection.
func (r *MessageRepo) Prepend(msg models.Message) error {
	messages, err := r.FindAll()
	if err != nil {
		return err
	}
	messages = append([]models.Message{msg}, messages...)
	return r.store.save(messagesDocument, messages)
}

// DeleteByIDs removes every message whose id appears in ids. A missing
// document counts as success.
func (r *MessageRepo) DeleteByIDs(ids []int64) error {
	var messages []models.Message
	err := r.store.load(messagesDocument, &messages)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	remaining := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if !drop[m.ID] {
			remaining = append(remaining, m)
		}
	}
	return r.store.save(messagesDocument, remaining)
}
