// Package urlgen produces newline-delimited URL lists for benchmark runs. The
// mix (encyclopedia articles, httpbin endpoints, popular sites, duplicate
// variants) exercises every classification path of the fetcher.
package urlgen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
)

const (
	wikipediaBase = "https://en.wikipedia.org/wiki/"
	httpbinBase   = "https://httpbin.org/"
)

var wikipediaArticles = []string{
	"Algorithm", "Computer_science", "Programming_language", "Artificial_intelligence",
	"Machine_learning", "Data_science", "Computer_network", "Database", "Cloud_computing",
	"Cybersecurity", "Operating_system", "Web_development", "Software_engineering",
	"Internet_of_things", "Virtual_reality", "Augmented_reality", "Quantum_computing",
	"Blockchain", "Cryptography", "Big_data", "Robotics", "Automation", "Computer_vision",
	"Natural_language_processing", "Neural_network", "Deep_learning", "Reinforcement_learning",
	"Computer_architecture", "Computer_graphics", "Information_theory", "Computer_security",
	"Software_testing", "Web_browser", "Web_server", "Search_engine", "World_Wide_Web",
	"HTTP", "HTTPS", "HTML", "CSS", "JavaScript", "XML", "JSON", "API",
	"REST", "GraphQL", "Microservices", "Docker", "Kubernetes", "DevOps",
	"Unix", "Linux", "Microsoft_Windows", "macOS", "Android_(operating_system)", "iOS",
}

var httpbinEndpoints = []string{
	"get", "post", "put", "delete", "patch", "ip", "user-agent", "headers",
	"uuid", "status/200", "status/404", "status/500", "delay/1", "html",
	"json", "image/png", "image/jpeg", "robots.txt", "xml", "anything",
}

var popularSites = []string{
	"https://github.com",
	"https://stackoverflow.com",
	"https://news.ycombinator.com",
	"https://reddit.com",
	"https://example.com",
	"https://mozilla.org",
	"https://developer.mozilla.org",
	"https://medium.com",
	"https://dev.to",
	"https://go.dev",
}

// Generate builds a shuffled list of exactly count URLs: the popular sites,
// a sample of Wikipedia articles (up to count/2), a sample of httpbin
// endpoints (up to count/4), topped up with duplicate entries carrying random
// query parameters. Duplicates are deliberate; the crawler must treat them as
// independent fetches.
func Generate(count int, rng *rand.Rand) []string {
	if count <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	urls := append([]string(nil), popularSites...)
	urls = append(urls, sample(rng, wikipediaArticles, count/2, wikipediaBase)...)
	urls = append(urls, sample(rng, httpbinEndpoints, count/4, httpbinBase)...)

	// Top up with query-parameter variants of already chosen URLs.
	base := append([]string(nil), urls...)
	for i := len(urls); i < count; i++ {
		pick := base[rng.Intn(len(base))]
		urls = append(urls, fmt.Sprintf("%s?param%d=%d", pick, i, rng.Intn(1000)+1))
	}

	rng.Shuffle(len(urls), func(i, j int) {
		urls[i], urls[j] = urls[j], urls[i]
	})
	return urls[:count]
}

// WriteList writes one URL per line to path.
func WriteList(urls []string, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create url list: %w", err)
	}
	defer file.Close() //nolint:errcheck // close error surfaced via Flush/Sync

	w := bufio.NewWriter(file)
	for _, u := range urls {
		if _, err := fmt.Fprintln(w, u); err != nil {
			return fmt.Errorf("write url list: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush url list: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync url list: %w", err)
	}
	return nil
}

// sample picks up to n distinct items and prefixes each with base.
func sample(rng *rand.Rand, items []string, n int, base string) []string {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	idx := rng.Perm(len(items))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, base+items[i])
	}
	return out
}
