package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"aqua-support-be/pkg/agent"

	"github.com/patrickmn/go-cache"
)

// AnswerMemoRepository caches finished agent results per normalized
// question so repeated identical questions skip the retrieval loop.
type AnswerMemoRepository struct {
	cache *cache.Cache
}

func NewAnswerMemoRepository(expiry time.Duration) *AnswerMemoRepository {
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	c := cache.New(expiry, 10*time.Minute)
	return &AnswerMemoRepository{
		cache: c,
	}
}

func memoKey(question string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(question), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func (r *AnswerMemoRepository) Save(question string, result *agent.Result) {
	r.cache.Set(memoKey(question), result, cache.DefaultExpiration)
}

func (r *AnswerMemoRepository) Get(question string) (*agent.Result, bool) {
	if x, found := r.cache.Get(memoKey(question)); found {
		return x.(*agent.Result), true
	}
	return nil, false
}

func (r *AnswerMemoRepository) Delete(question string) {
	r.cache.Delete(memoKey(question))
}
