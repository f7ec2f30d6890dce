// Package assistant answers player questions from a fixed set of topics.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/schollz/closestmatch"
)

// Topic identifies which canned answer a question resolved to.
type Topic string

const (
	TopicMission  Topic = "mission"
	TopicBirds    Topic = "birds"
	TopicHeatMap  Topic = "heat_map"
	TopicProgress Topic = "progress"
	TopicDefault  Topic = "default"
)

// Greeting is shown before the first question.
const Greeting = "Hi! I'm your Arctic exploration assistant. Ask me anything about missions, tasks or Arctic wildlife!"

// minFuzzyOverlap is the share of a keyword's bigrams a misspelled word must
// contain to count as that keyword.
const minFuzzyOverlap = 0.5

// Progress is the player state used to answer progress questions.
type Progress struct {
	Balance           int
	Points            int
	CompletedLevels   int
	TotalLevels       int
	CompletedMissions int
	TotalMissions     int
	NextMission       string
}

// Reply is the assistant's answer.
type Reply struct {
	Topic Topic  `json:"topic"`
	Text  string `json:"text"`
}

var keywords = map[string]Topic{
	"mission":    TopicMission,
	"missions":   TopicMission,
	"task":       TopicMission,
	"tasks":      TopicMission,
	"bird":       TopicBirds,
	"birds":      TopicBirds,
	"seabird":    TopicBirds,
	"nest":       TopicBirds,
	"map":        TopicHeatMap,
	"heat":       TopicHeatMap,
	"progress":   TopicProgress,
	"stats":      TopicProgress,
	"statistics": TopicProgress,
}

// topicOrder is the precedence when a question mentions several topics.
var topicOrder = []Topic{TopicMission, TopicBirds, TopicHeatMap, TopicProgress}

// Responder matches questions to topics.
type Responder struct {
	typingDelay time.Duration
	matcher     *closestmatch.ClosestMatch
}

// New creates a Responder that waits typingDelay before answering.
func New(typingDelay time.Duration) *Responder {
	words := make([]string, 0, len(keywords))
	for k := range keywords {
		words = append(words, k)
	}
	return &Responder{
		typingDelay: typingDelay,
		matcher:     closestmatch.New(words, []int{2}),
	}
}

// QuickQuestions returns the suggested questions.
func QuickQuestions() []string {
	return []string{
		"What is my next mission?",
		"How do I save the seabirds?",
		"What is a heat map?",
		"Show my progress",
	}
}

// Ask answers question after the typing delay. It returns ctx.Err() if ctx
// ends first.
func (r *Responder) Ask(ctx context.Context, question string, p Progress) (Reply, error) {
	reply := r.Answer(question, p)
	if r.typingDelay <= 0 {
		return reply, nil
	}

	timer := time.NewTimer(r.typingDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return reply, nil
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
}

// Answer returns the reply for question without delay.
func (r *Responder) Answer(question string, p Progress) Reply {
	topic := r.Classify(question)
	return Reply{Topic: topic, Text: render(topic, p)}
}

// Classify resolves question to a topic: exact keyword substrings first,
// then misspelled words.
func (r *Responder) Classify(question string) Topic {
	q := strings.ToLower(question)
	for _, t := range topicOrder {
		for k, kt := range keywords {
			if kt == t && strings.Contains(q, k) {
				return t
			}
		}
	}

	found := make(map[Topic]bool)
	for _, w := range strings.FieldsFunc(q, func(c rune) bool { return !unicode.IsLetter(c) }) {
		if len(w) < 3 {
			continue
		}
		match := r.matcher.Closest(w)
		if match == "" || bigramOverlap(match, w) < minFuzzyOverlap {
			continue
		}
		found[keywords[match]] = true
	}
	for _, t := range topicOrder {
		if found[t] {
			return t
		}
	}
	return TopicDefault
}

func bigrams(s string) map[string]bool {
	out := make(map[string]bool)
	rs := []rune(s)
	for i := 0; i+1 < len(rs); i++ {
		out[string(rs[i:i+2])] = true
	}
	return out
}

// bigramOverlap returns the share of keyword's bigrams present in word.
func bigramOverlap(keyword, word string) float64 {
	kb := bigrams(keyword)
	if len(kb) == 0 {
		return 0
	}
	wb := bigrams(word)
	shared := 0
	for b := range kb {
		if wb[b] {
			shared++
		}
	}
	return float64(shared) / float64(len(kb))
}

func render(t Topic, p Progress) string {
	switch t {
	case TopicMission:
		if p.NextMission == "" {
			return "You have completed every open mission. Check back for new expeditions!"
		}
		return fmt.Sprintf("Your next mission is %q. Complete its levels in order to earn points and unlock the next expedition.", p.NextMission)
	case TopicBirds:
		return "To save the seabirds: 1) measure the water temperature (it should be 2-4°C), 2) plot the migration route on the map, 3) build a sheltered nest from the materials you have. Don't forget the temperature sensor!"
	case TopicHeatMap:
		return "A heat map shows temperature data on a map. Warm zones are red and orange, cold zones are blue. It helps find safe areas for animals and understand climate change."
	case TopicProgress:
		return fmt.Sprintf("You have completed %d of %d levels and %d of %d missions, scored %d points and have %d coins. Keep going!",
			p.CompletedLevels, p.TotalLevels, p.CompletedMissions, p.TotalMissions, p.Points, p.Balance)
	default:
		return "Great question! Try asking me about a specific mission, task or natural phenomenon and I'll give you a detailed answer."
	}
}
