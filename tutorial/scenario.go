// Package tutorial contains the sample pipelines built on package rx.
package tutorial

import (
	"strings"
	"time"

	"github.com/boookk/bithumb-practice/logger"
	"github.com/boookk/bithumb-practice/rx"
)

var (
	brands  = []string{"Blenders", "Old", "Johnnie"}
	suffix  = []string{"Pride", "Monk", "Walker"}
	queries = []string{"google", "abc", "fb", "stackoverflow"}
)

// MinSearchLength is the shortest word kept by SearchString.
const MinSearchLength = 5

// ConcatWithDelay emits the brand names then the suffixes, each element delayed by delay.
// The second sequence is only subscribed after the first one completes.
func ConcatWithDelay(delay time.Duration) rx.Flux[string] {
	first := rx.FromSlice(brands).DelayElements(delay)
	second := rx.FromSlice(suffix).DelayElements(delay)
	return rx.Concat[string](first, second).Log("tutorial.concat")
}

// EvenNumbers emits the even numbers from 1 to 100.
func EvenNumbers() rx.Flux[int] {
	return rx.Range(1, 100).
		Filter(func(n int) bool {
			return n%2 == 0
		}).
		DoOnNext(func(n int) error {
			logger.Infof("%d", n)
			return nil
		})
}

// PublishFlow emits "hello" and "there" on sc. A nil sc means the shared single worker.
func PublishFlow(sc rx.Scheduler) rx.Flux[string] {
	if sc == nil {
		sc = rx.SingleScheduler()
	}
	return rx.Just("hello", "there").
		PublishOn(sc).
		Log("tutorial.publish")
}

// UpperNames emits every person with an upper-cased name. Without people it uses DefaultPeople.
func UpperNames(people ...Person) rx.Flux[Person] {
	if len(people) == 0 {
		people = DefaultPeople()
	}
	upper := rx.Map(rx.FromSlice(people), func(p Person) (Person, error) {
		return p.Upper(), nil
	})
	return upper.
		DoOnNext(func(p Person) error {
			logger.Infof("%s", p.Name)
			return nil
		}).
		Log("tutorial.upper")
}

// ZipList pairs the brand names with their suffixes.
func ZipList() rx.Flux[string] {
	return rx.Zip(rx.FromSlice(brands), rx.FromSlice(suffix), func(a, b string) (string, error) {
		return a + " " + b, nil
	}).Log("tutorial.zip")
}

// SearchString keeps the long words, upper-cases them through an inner sequence and plays the result twice.
func SearchString() rx.Flux[string] {
	long := rx.FromSlice(queries).Filter(func(s string) bool {
		return len(s) >= MinSearchLength
	})
	return rx.ConcatMap(long, func(s string) (rx.Publisher[string], error) {
		return rx.Just(strings.ToUpper(s)), nil
	}).
		Repeat(1).
		Log("tutorial.search")
}
