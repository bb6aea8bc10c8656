package types

// Feature names one ranking signal reported by the recommender.
type Feature string

const (
	FeatureDistance       Feature = "distance"
	FeatureTimeElapsed    Feature = "time_elapsed_since_added"
	FeatureLength         Feature = "length"
	FeatureRetrievalCount Feature = "retrieval_count"
)

// KnownFeatures lists the features in display order.
var KnownFeatures = []Feature{
	FeatureDistance,
	FeatureTimeElapsed,
	FeatureLength,
	FeatureRetrievalCount,
}

// IsKnown reports whether f is one of KnownFeatures.
func (f Feature) IsKnown() bool {
	for _, k := range KnownFeatures {
		if f == k {
			return true
		}
	}
	return false
}

// Contribution is one feature's part of a candidate's weighted score.
// Score is normalized to [0,1]; Contribution is Score * Weight.
type Contribution struct {
	Feature      Feature `json:"feature"`
	Value        float64 `json:"value"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Candidate is a prompt/response pair returned by the recommender.
type Candidate struct {
	Prompt        string         `json:"prompt"`
	Response      string         `json:"response"`
	Timestamp     float64        `json:"creation_time,omitempty"`
	TimeElapsed   string         `json:"time_elapsed,omitempty"`
	Contributions []Contribution `json:"contributions"`
}

// Lookup returns the contribution for feature f, if present.
func (c Candidate) Lookup(f Feature) (Contribution, bool) {
	for _, ct := range c.Contributions {
		if ct.Feature == f {
			return ct, true
		}
	}
	return Contribution{}, false
}

// WeightedSuggestion is a ranked candidate.
type WeightedSuggestion struct {
	Candidate
	WeightedScore float64 `json:"weighted_score"`
	DistanceScore float64 `json:"distance_score"`
}

// RecommendRequest is the body sent to the recommender.
type RecommendRequest struct {
	Message        string              `json:"message"`
	TopN           int                 `json:"top_n"`
	Weights        map[Feature]float64 `json:"weights"`
	DistanceFilter float64             `json:"distance_filter"`
}

// Sender identifies who wrote a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one transcript entry. Bot entries carry the ID of the
// user entry they answer in ReplyTo.
type ChatMessage struct {
	ID      string `json:"id"`
	Sender  Sender `json:"sender"`
	Text    string `json:"text"`
	ReplyTo string `json:"reply_to,omitempty"`
}
