package classifier

import "topiclab/internal/domain"

type Classifier interface {
	Classify(text string) domain.Result
	Topics() []domain.TopicWords
}
