// Package vocab is the token<->id dictionary the topic model is trained over,
// together with the document-frequency statistics used to prune it.
package vocab

import (
	"compress/gzip"
	"errors"
	"fmt"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrCorrupt = errors.New("corrupt dictionary")

// TermCount is one bag-of-words entry.
type TermCount struct {
	ID    int
	Count int
}

// Bow is a document as (id, count) pairs sorted by id.
type Bow []TermCount

// Len is the number of tokens the bag stands for.
func (b Bow) Len() int {
	n := 0
	for _, tc := range b {
		n += tc.Count
	}
	return n
}

type Vocabulary struct {
	token2id map[string]int
	id2token []string
	dfs      []int
	numDocs  int
	numPos   int
}

func New() *Vocabulary {
	return &Vocabulary{token2id: make(map[string]int)}
}

// Build creates a vocabulary from tokenized documents.
func Build(docs [][]string) *Vocabulary {
	v := New()
	v.AddDocuments(docs)
	return v
}

// AddDocuments assigns ids to unseen tokens (in sorted order per document) and
// updates the document-frequency counts.
func (v *Vocabulary) AddDocuments(docs [][]string) {
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			seen[tok] = struct{}{}
		}

		fresh := make([]string, 0, len(seen))
		for tok := range seen {
			if _, ok := v.token2id[tok]; !ok {
				fresh = append(fresh, tok)
			}
		}
		sort.Strings(fresh)
		for _, tok := range fresh {
			v.token2id[tok] = len(v.id2token)
			v.id2token = append(v.id2token, tok)
			v.dfs = append(v.dfs, 0)
		}

		for tok := range seen {
			v.dfs[v.token2id[tok]]++
		}
		v.numDocs++
		v.numPos += len(doc)
	}
}

// FilterExtremes keeps tokens found in at least noBelow documents and in at most
// noAbove (a fraction) of all documents, then at most keepN of those with the
// highest document frequency. Surviving ids are compacted in their old order.
func (v *Vocabulary) FilterExtremes(noBelow int, noAbove float64, keepN int) {
	maxDocs := noAbove * float64(v.numDocs)

	keep := make([]int, 0, len(v.id2token))
	for id, df := range v.dfs {
		if df >= noBelow && float64(df) <= maxDocs {
			keep = append(keep, id)
		}
	}

	if keepN >= 0 && len(keep) > keepN {
		sort.SliceStable(keep, func(i, j int) bool {
			return v.dfs[keep[i]] > v.dfs[keep[j]]
		})
		keep = keep[:keepN]
		sort.Ints(keep)
	}

	id2token := make([]string, len(keep))
	dfs := make([]int, len(keep))
	token2id := make(map[string]int, len(keep))
	for newID, oldID := range keep {
		tok := v.id2token[oldID]
		id2token[newID] = tok
		dfs[newID] = v.dfs[oldID]
		token2id[tok] = newID
	}

	v.id2token = id2token
	v.dfs = dfs
	v.token2id = token2id
}

// DocToBow converts tokens to a bag of words; unknown tokens are ignored.
func (v *Vocabulary) DocToBow(tokens []string) Bow {
	counts := make(map[int]int)
	for _, tok := range tokens {
		if id, ok := v.token2id[tok]; ok {
			counts[id]++
		}
	}

	bow := make(Bow, 0, len(counts))
	for id, c := range counts {
		bow = append(bow, TermCount{ID: id, Count: c})
	}
	sort.Slice(bow, func(i, j int) bool { return bow[i].ID < bow[j].ID })

	return bow
}

func (v *Vocabulary) ID(token string) (int, bool) {
	id, ok := v.token2id[token]
	return id, ok
}

func (v *Vocabulary) Token(id int) (string, bool) {
	if id < 0 || id >= len(v.id2token) {
		return "", false
	}
	return v.id2token[id], true
}

func (v *Vocabulary) DocFreq(id int) int {
	if id < 0 || id >= len(v.dfs) {
		return 0
	}
	return v.dfs[id]
}

func (v *Vocabulary) Len() int     { return len(v.id2token) }
func (v *Vocabulary) NumDocs() int { return v.numDocs }
func (v *Vocabulary) NumPos() int  { return v.numPos }

type vocabFile struct {
	Tokens  []string `json:"tokens"`
	DocFreq []int    `json:"dfs"`
	NumDocs int      `json:"num_docs"`
	NumPos  int      `json:"num_pos"`
}

// Save writes the vocabulary as gzipped JSON, replacing path.
func (v *Vocabulary) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	err = json.NewEncoder(zw).Encode(vocabFile{
		Tokens:  v.id2token,
		DocFreq: v.dfs,
		NumDocs: v.numDocs,
		NumPos:  v.numPos,
	})
	if err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

// Load reads a vocabulary written by Save.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	var vf vocabFile
	if err := json.NewDecoder(zr).Decode(&vf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(vf.Tokens) != len(vf.DocFreq) {
		return nil, fmt.Errorf("%w: %d tokens but %d frequencies", ErrCorrupt, len(vf.Tokens), len(vf.DocFreq))
	}

	v := &Vocabulary{
		token2id: make(map[string]int, len(vf.Tokens)),
		id2token: vf.Tokens,
		dfs:      vf.DocFreq,
		numDocs:  vf.NumDocs,
		numPos:   vf.NumPos,
	}
	for id, tok := range vf.Tokens {
		if _, dup := v.token2id[tok]; dup {
			return nil, fmt.Errorf("%w: duplicate token %q", ErrCorrupt, tok)
		}
		v.token2id[tok] = id
	}

	return v, nil
}
