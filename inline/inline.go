// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/samber/lo"
)

// feedPageSize is the largest page the chapter feed accepts.
const feedPageSize = 500

func Run(ctx context.Context, options *Options) error {
	if options.Client == nil {
		return errors.New("inline: client is not set")
	}

	if options.Out == nil {
		options.Out = os.Stdout
	}

	page, err := options.Client.ListManga(ctx, mangadex.MangaQuery{
		Pagination:    mangadex.Pagination{Limit: options.Limit},
		Title:         options.Query,
		ContentRating: options.ContentRating,
	})
	if err != nil {
		return fmt.Errorf("search %q: %w", options.Query, err)
	}

	for _, failure := range page.Failures() {
		log.Warnf("skipping search result: %v", failure)
	}

	selected := page.Values()
	if picker, ok := options.MangaPicker.Get(); ok {
		selected = nil
		if choice, ok := picker(page.Values()).Get(); ok {
			selected = append(selected, choice)
		}
	}

	mangas := make([]*Manga, 0, len(selected))
	for _, m := range selected {
		manga, err := prepareManga(ctx, m, options)
		if err != nil {
			return err
		}
		mangas = append(mangas, manga)
	}

	if options.Json {
		return writeJson(options.Out, mangas, options)
	}

	for _, manga := range mangas {
		for _, chapter := range manga.Chapters {
			if !options.Pages {
				fmt.Fprintln(options.Out, chapter.URL)
				continue
			}

			for _, p := range chapter.Pages {
				fmt.Fprintln(options.Out, p)
			}
		}
	}

	return nil
}

func prepareManga(ctx context.Context, m mangadex.MangaData, options *Options) (*Manga, error) {
	manga := newManga(m, options.Languages)

	chapters, err := allChapters(ctx, options.Client, m, options.Languages)
	if err != nil {
		return nil, err
	}

	if filter, ok := options.ChaptersFilter.Get(); ok {
		chapters, err = filter(chapters)
		if err != nil {
			return nil, err
		}
	}

	manga.Chapters = lo.Map(chapters, func(c mangadex.ChapterData, _ int) *Chapter {
		return newChapter(c)
	})

	if !options.Pages {
		return manga, nil
	}

	for i, c := range chapters {
		server, err := options.Client.AtHomeServer(ctx, c.Data.ID, false)
		if err != nil {
			log.Warnf("no at-home server for chapter %s: %v", c.Data.ID, err)
			continue
		}
		manga.Chapters[i].Pages = server.PageURLs(c.Data.Attributes, options.DataSaver)
	}

	return manga, nil
}

// allChapters walks the whole feed of a manga in reading order.
func allChapters(ctx context.Context, client *mangadex.Client, m mangadex.MangaData, langs []string) ([]mangadex.ChapterData, error) {
	query := mangadex.FeedQuery{
		Pagination:         mangadex.Pagination{Limit: feedPageSize},
		TranslatedLanguage: langs,
		Order:              mangadex.FeedOrder{Volume: mangadex.Asc, Chapter: mangadex.Asc},
	}

	var chapters []mangadex.ChapterData
	for {
		page, err := client.MangaFeed(ctx, m.Data.ID, query)
		if err != nil {
			return nil, fmt.Errorf("feed of %s: %w", m.Data.ID, err)
		}

		chapters = append(chapters, page.Values()...)
		if !page.HasNext() {
			return chapters, nil
		}
		query.Offset = page.Offset + len(page.Results)
	}
}

func writeJson(out io.Writer, mangas []*Manga, options *Options) error {
	data, err := asJson(mangas, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
