package pipeline

import (
	"fmt"

	"barber-prices/config"
	"barber-prices/fetcher"
	"barber-prices/parser"
)

// BuildSources turns the configured registry into runnable sources.
// fetchers maps a fetch engine name to the fetcher serving it.
func BuildSources(cfg *config.Config, fetchers map[string]fetcher.PageFetcher) ([]Source, error) {
	sources := make([]Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		engine := cfg.EngineFor(sc)
		f, ok := fetchers[engine]
		if !ok {
			return nil, fmt.Errorf("source %q: no fetcher for engine %q", sc.Name, engine)
		}

		ex, err := parser.NewExtractor(sc)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", sc.Name, err)
		}

		sources = append(sources, Source{
			Name:      sc.Name,
			URL:       sc.URL,
			Fetcher:   f,
			Extractor: ex,
		})
	}
	return sources, nil
}
