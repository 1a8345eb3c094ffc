package yamlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"cardshop-bot/internal/domain"
	"cardshop-bot/internal/ports/output"
	"cardshop-bot/pkg/sanitize"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Compile-time check to ensure CardRepository implements the output port
var _ output.CardRepository = (*CardRepository)(nil)

// Persisted document shape: a top-level map from card id (as text) to the
// card's fields, reviews nested as an ordered sequence. Timestamps are
// stored as floating-point seconds since epoch.
type (
	cardRecord struct {
		Category    string         `yaml:"category"`
		Title       string         `yaml:"title"`
		VideoID     string         `yaml:"video_id"`
		Description string         `yaml:"description"`
		Reviews     []reviewRecord `yaml:"reviews"`
	}

	reviewRecord struct {
		UserID    int64   `yaml:"user_id"`
		Rating    int     `yaml:"rating"`
		Comment   string  `yaml:"comment"`
		Timestamp float64 `yaml:"timestamp"`
	}
)

// CardRepository struct - Output adapter persisting the catalog to a single
// human-readable YAML file.
//
// One mutex serializes every mutation for its full read-modify-persist-
// snapshot duration; mutation volume is low and simplicity wins over
// throughput. Reads are lock-free against the last committed state, which is
// only swapped in after the file has been atomically replaced - a failed
// persist leaves both the file and the visible state untouched.
type CardRepository struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[map[int]cardRecord]
	nextID   int
	path     string
	rotator  *BackupRotator

	// swapped in tests to simulate a crash between temp write and replace
	renameFn func(oldpath, newpath string) error
}

// NewCardRepository loads the catalog file (an absent file is an empty
// catalog) and positions the id counter above every existing id.
func NewCardRepository(path string, rotator *BackupRotator) (*CardRepository, error) {
	r := &CardRepository{
		path:     path,
		rotator:  rotator,
		renameFn: os.Rename,
	}

	cards, err := loadCatalog(path)
	if err != nil {
		return nil, err
	}

	r.nextID = 1
	for id := range cards {
		if id >= r.nextID {
			r.nextID = id + 1
		}
	}
	r.snapshot.Store(&cards)

	return r, nil
}

func loadCatalog(path string) (map[int]cardRecord, error) {
	cards := make(map[int]cardRecord)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cards, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	raw := make(map[string]cardRecord)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	for key, rec := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid card id %q in catalog file", key)
		}
		cards[id] = rec
	}
	return cards, nil
}

// CreateCard assigns the next unused id and persists the new card.
// Ids are monotonic and never reused within one run, even after deletions.
func (r *CardRepository) CreateCard(category domain.Category, title, description, videoID string) (int, error) {
	if !category.IsValid() {
		return 0, domain.ErrInvalidCategory
	}

	title = sanitize.Title(title, domain.MaxTitleLength)
	description = sanitize.Description(description, domain.MaxDescriptionLength)

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.clone()
	id := r.nextID
	next[id] = cardRecord{
		Category:    string(category),
		Title:       title,
		VideoID:     videoID,
		Description: description,
		Reviews:     []reviewRecord{},
	}

	if err := r.commit(next); err != nil {
		return 0, err
	}
	r.nextID++
	return id, nil
}

// GetCards returns summaries for a category, ascending by id
func (r *CardRepository) GetCards(category domain.Category) ([]domain.CardSummary, error) {
	cards := *r.snapshot.Load()

	summaries := make([]domain.CardSummary, 0)
	for _, id := range sortedIDs(cards) {
		if cards[id].Category == string(category) {
			summaries = append(summaries, domain.CardSummary{ID: id, Title: cards[id].Title})
		}
	}
	return summaries, nil
}

// GetCard returns one card by id, or domain.ErrCardNotFound
func (r *CardRepository) GetCard(id int) (*domain.Card, error) {
	cards := *r.snapshot.Load()

	rec, ok := cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	card := toDomain(id, rec)
	return &card, nil
}

// GetAllCards returns every card, ascending by id
func (r *CardRepository) GetAllCards() ([]domain.Card, error) {
	cards := *r.snapshot.Load()

	all := make([]domain.Card, 0, len(cards))
	for _, id := range sortedIDs(cards) {
		all = append(all, toDomain(id, cards[id]))
	}
	return all, nil
}

// UpdateCardVideo replaces the video reference of an existing card
func (r *CardRepository) UpdateCardVideo(id int, videoID string) error {
	return r.updateCard(id, func(rec *cardRecord) {
		rec.VideoID = videoID
	})
}

// UpdateCardTitle replaces the title of an existing card
func (r *CardRepository) UpdateCardTitle(id int, title string) error {
	return r.updateCard(id, func(rec *cardRecord) {
		rec.Title = sanitize.Title(title, domain.MaxTitleLength)
	})
}

// UpdateCardDescription replaces the description of an existing card
func (r *CardRepository) UpdateCardDescription(id int, description string) error {
	return r.updateCard(id, func(rec *cardRecord) {
		rec.Description = sanitize.Description(description, domain.MaxDescriptionLength)
	})
}

func (r *CardRepository) updateCard(id int, apply func(rec *cardRecord)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.clone()
	rec, ok := next[id]
	if !ok {
		return domain.ErrCardNotFound
	}
	apply(&rec)
	next[id] = rec

	return r.commit(next)
}

// DeleteCard removes a card and all its reviews atomically
func (r *CardRepository) DeleteCard(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.clone()
	if _, ok := next[id]; !ok {
		return domain.ErrCardNotFound
	}
	delete(next, id)

	return r.commit(next)
}

// AddReview appends a review with the current timestamp. At most one review
// exists per (card, user) pair; the check runs inside the same critical
// section as the persist so concurrent duplicates cannot slip through.
func (r *CardRepository) AddReview(cardID int, userID int64, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return domain.ErrInvalidRating
	}
	comment = sanitize.Text(comment, domain.MaxCommentLength, false)

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.clone()
	rec, ok := next[cardID]
	if !ok {
		return domain.ErrCardNotFound
	}
	for _, rv := range rec.Reviews {
		if rv.UserID == userID {
			return domain.ErrDuplicateReview
		}
	}

	rec.Reviews = append(rec.Reviews, reviewRecord{
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
	})
	next[cardID] = rec

	return r.commit(next)
}

// HasReviewed reports whether the user already reviewed the card.
// A missing card reads as not reviewed.
func (r *CardRepository) HasReviewed(cardID int, userID int64) (bool, error) {
	cards := *r.snapshot.Load()

	rec, ok := cards[cardID]
	if !ok {
		return false, nil
	}
	for _, rv := range rec.Reviews {
		if rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// commit persists the mutated catalog, makes it visible to readers and takes
// a backup snapshot. Callers hold the write mutex. When persistence fails the
// visible state is left untouched, so the mutation rolls back wholesale.
func (r *CardRepository) commit(next map[int]cardRecord) error {
	if err := r.persist(next); err != nil {
		logrus.Errorf("Catalog persistence failed, rolling back: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	r.snapshot.Store(&next)
	r.rotator.Snapshot(r.path)
	return nil
}

// persist serializes the whole catalog to a temp file in the target
// directory, then atomically replaces the canonical file. A crash between
// the two steps leaves either the old file or the new file, never a mix.
func (r *CardRepository) persist(cards map[int]cardRecord) error {
	raw := make(map[string]cardRecord, len(cards))
	for id, rec := range cards {
		raw[strconv.Itoa(id)] = rec
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(r.path), uuid.NewString()))

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp catalog: %w", err)
	}
	if err := r.renameFn(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing catalog file: %w", err)
	}
	return nil
}

func (r *CardRepository) clone() map[int]cardRecord {
	cards := *r.snapshot.Load()
	next := make(map[int]cardRecord, len(cards)+1)
	for id, rec := range cards {
		reviews := make([]reviewRecord, len(rec.Reviews))
		copy(reviews, rec.Reviews)
		rec.Reviews = reviews
		next[id] = rec
	}
	return next
}

func sortedIDs(cards map[int]cardRecord) []int {
	ids := make([]int, 0, len(cards))
	for id := range cards {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func toDomain(id int, rec cardRecord) domain.Card {
	reviews := make([]domain.Review, 0, len(rec.Reviews))
	for _, rv := range rec.Reviews {
		sec := int64(rv.Timestamp)
		nsec := int64((rv.Timestamp - float64(sec)) * float64(time.Second))
		reviews = append(reviews, domain.Review{
			UserID:    rv.UserID,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			Timestamp: time.Unix(sec, nsec),
		})
	}
	return domain.Card{
		ID:          id,
		Category:    domain.Category(rec.Category),
		Title:       rec.Title,
		Description: rec.Description,
		VideoID:     rec.VideoID,
		Reviews:     reviews,
	}
}
