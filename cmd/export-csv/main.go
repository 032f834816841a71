// export-csv dumps the embedded corpus to CSV files for content review.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"civichub/internal/content"
	"civichub/internal/index"
	"civichub/internal/routes"
)

func main() {
	var (
		topicsOut   = flag.String("topics", "data/topics.csv", "output CSV path for topics")
		glossaryOut = flag.String("glossary", "data/glossary.csv", "output CSV path for glossary terms")
	)
	flag.Parse()

	provider := content.NewProvider()
	if err := provider.Initialize(context.Background()); err != nil {
		log.Fatalf("corpus load failed: %v", err)
	}
	ix := index.Build(provider.Domains())

	if err := exportTopics(provider, ix, *topicsOut); err != nil {
		log.Fatalf("export topics failed: %v", err)
	}
	if err := exportGlossary(provider, *glossaryOut); err != nil {
		log.Fatalf("export glossary failed: %v", err)
	}

	log.Printf("exported %d topics to %s and %d glossary terms to %s",
		ix.Len(), *topicsOut, len(provider.Glossary()), *glossaryOut)
}

func exportTopics(p *content.Provider, ix *index.Index, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "breadcrumb", "route", "summary", "has_full_text"}); err != nil {
		return err
	}

	for _, rec := range ix.Records() {
		ref, ok := ix.Lookup(rec.TopicID)
		if !ok {
			continue
		}
		if err := w.Write([]string{
			rec.TopicID,
			rec.Title,
			rec.Breadcrumb,
			routes.Resolve(rec.TopicID),
			ref.Topic.Summary,
			strconv.FormatBool(ref.Topic.FullText != ""),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportGlossary(p *content.Provider, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"term", "definition", "related_topics"}); err != nil {
		return err
	}

	for _, t := range p.Glossary() {
		related := ""
		for i, id := range t.RelatedTopics {
			if i > 0 {
				related += ";"
			}
			related += id
		}
		if err := w.Write([]string{t.Term, t.Definition, related}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
