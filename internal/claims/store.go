// Package claims turns uploaded files into claims and runs them through the
// claim workflow. Files are fingerprinted with SHA-256 and duplicates are
// rejected before a claim exists.
package claims

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/JaimeStill/superclaims/internal/workflow"
)

// Upload is one file received for a claim.
type Upload struct {
	Filename string
	Data     []byte
}

// Hash returns the hex-encoded SHA-256 fingerprint of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Store holds the documents of one pending claim keyed by content hash.
// A Store is not safe for concurrent use.
type Store struct {
	docs  []*workflow.Document
	index map[string]int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add fingerprints u and stores it as a new document. Empty files fail with
// ErrInvalidFile and content already in the store fails with ErrDuplicate.
func (s *Store) Add(u Upload) (*workflow.Document, error) {
	if len(u.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidFile, u.Filename)
	}

	hash := Hash(u.Data)
	if i, ok := s.index[hash]; ok {
		return nil, fmt.Errorf("%w: %s matches %s", ErrDuplicate, u.Filename, s.docs[i].Filename)
	}

	doc := &workflow.Document{
		ContentHash: hash,
		Filename:    u.Filename,
		RawBytes:    u.Data,
	}

	s.index[hash] = len(s.docs)
	s.docs = append(s.docs, doc)
	return doc, nil
}

// Find returns the document with the given content hash.
func (s *Store) Find(hash string) (*workflow.Document, bool) {
	i, ok := s.index[hash]
	if !ok {
		return nil, false
	}
	return s.docs[i], true
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// Claim builds a claim over the stored documents in insertion order.
func (s *Store) Claim() (*workflow.Claim, error) {
	if len(s.docs) == 0 {
		return nil, ErrEmptyClaim
	}

	docs := make([]*workflow.Document, len(s.docs))
	copy(docs, s.docs)
	return workflow.NewClaim(docs), nil
}

// NewClaim stores every upload and builds a claim from them. Any duplicate
// rejects the whole batch.
func NewClaim(uploads []Upload) (*workflow.Claim, error) {
	store := NewStore()
	for _, u := range uploads {
		if _, err := store.Add(u); err != nil {
			return nil, err
		}
	}
	return store.Claim()
}
