package imagestore

import (
	"context"
	"slices"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// Memory keeps images in process memory. URLs point at publicURL, which the
// demo API serves from Get.
type Memory struct {
	mu        sync.RWMutex
	objects   map[string]memoryObject
	publicURL string
}

// NewMemory creates an in-memory image store
func NewMemory(publicURL string) *Memory {
	return &Memory{
		objects:   make(map[string]memoryObject),
		publicURL: publicURL,
	}
}

// Put stores data under key
func (m *Memory) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	m.objects[key] = memoryObject{data: slices.Clone(data), contentType: contentType}
	m.mu.Unlock()
	return joinURL(m.publicURL, key), nil
}

// Get returns the bytes and content type stored under key
func (m *Memory) Get(_ context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", ErrNotFound
	}
	return slices.Clone(obj.data), obj.contentType, nil
}
