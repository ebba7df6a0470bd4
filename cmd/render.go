package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dexcli/dex/cache"
	"github.com/dexcli/dex/color"
	"github.com/dexcli/dex/icon"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/open"
	"github.com/dexcli/dex/style"
	"github.com/dexcli/dex/util"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// languages returns the preferred languages, most preferred first.
func languages() []string {
	return lo.Compact([]string{viper.GetString(key.MangaLanguage)})
}

// parseID accepts a bare id or a website link such as https://mangadex.org/title/{id}/slug.
func parseID(arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	link, err := url.Parse(arg)
	if err == nil && link.Host != "" {
		for _, segment := range strings.Split(link.Path, "/") {
			if id, err := uuid.Parse(segment); err == nil {
				return id, nil
			}
		}
	}

	return uuid.Nil, fmt.Errorf("not a MangaDex id or link: %s", arg)
}

func idArg(args []string) uuid.UUID {
	id, err := parseID(args[0])
	handleErr(err)
	return id
}

// mangaTitle renders the preferred title and remembers it for later lookups.
func mangaTitle(m mangadex.MangaData) string {
	title := m.Data.Attributes.Title.Preferred(languages()...)
	if err := cache.SetTitle(m.Data.ID, title); err != nil {
		log.Warnf("cache title of %s: %v", m.Data.ID, err)
	}
	return title
}

// titleOf finds the display title of a manga, asking the API only on a cache miss.
func titleOf(ctx context.Context, client *mangadex.Client, id uuid.UUID) string {
	if title, ok := cache.Title(id).Get(); ok {
		return title
	}

	m, err := client.GetManga(ctx, id)
	if err != nil {
		log.Warnf("title of %s: %v", id, err)
		return id.String()
	}
	return mangaTitle(m)
}

var ratingColors = map[mangadex.ContentRating]func(string) string{
	mangadex.RatingSafe:         style.Fg(style.SuccessColor),
	mangadex.RatingSuggestive:   style.Fg(style.WarningColor),
	mangadex.RatingErotica:      style.Fg(style.Peach),
	mangadex.RatingPornographic: style.Fg(style.ErrorColor),
}

func renderRating(rating mangadex.ContentRating) string {
	paint, ok := ratingColors[rating]
	if !ok {
		return string(rating)
	}
	return paint(string(rating))
}

// renderMangaLine is the one line summary used in listings.
func renderMangaLine(m mangadex.MangaData) string {
	attrs := m.Data.Attributes
	parts := []string{style.Bold(mangaTitle(m))}

	if year, ok := attrs.Year.Get(); ok {
		parts = append(parts, style.Faint(fmt.Sprintf("(%d)", year)))
	}
	if status, ok := attrs.Status.Get(); ok {
		parts = append(parts, style.Fg(color.Cyan)(string(status)))
	}
	if rating, ok := attrs.ContentRating.Get(); ok && rating != mangadex.RatingSafe {
		parts = append(parts, renderRating(rating))
	}

	return strings.Join(parts, " ")
}

func renderManga(w io.Writer, m mangadex.MangaData) {
	attrs := m.Data.Attributes
	langs := languages()

	fmt.Fprintln(w, style.Title(mangaTitle(m)))
	fmt.Fprintln(w, style.Faint(m.Data.ID.String()))
	fmt.Fprintln(w)

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s %s\n", style.Fg(color.Blue)(name+":"), value)
		}
	}

	field("Status", util.Capitalize(string(attrs.Status.OrEmpty())))
	field("Demographic", util.Capitalize(string(attrs.PublicationDemographic.OrEmpty())))
	field("Rating", renderRating(attrs.ContentRating.OrEmpty()))
	if year, ok := attrs.Year.Get(); ok {
		field("Year", fmt.Sprint(year))
	}
	field("Language", attrs.OriginalLanguage)
	field("Last chapter", attrs.LastChapter.OrEmpty())

	if len(attrs.Tags) > 0 {
		tag := style.Tag(style.Text, style.Surface)
		names := lo.Map(attrs.Tags, func(t mangadex.Tag, _ int) string {
			return tag(t.Attributes.Name.Preferred(langs...))
		})
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Join(names, " "))
	}

	if description := attrs.Description.Preferred(langs...); description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, util.Wrap(description, 100))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", icon.Get(icon.Link), style.Fg(style.SecondaryColor)(open.MangaURL(m.Data.ID)))
}

func renderChapterLine(c mangadex.ChapterData, read bool) string {
	attrs := c.Data.Attributes
	label := attrs.Label()
	if label == "" {
		label = style.Faint("Oneshot")
	}

	line := fmt.Sprintf("%s %s %s", label, style.Faint("["+attrs.TranslatedLanguage+"]"), style.Faint(c.Data.ID.String()))
	if read {
		line = icon.Get(icon.Mark) + " " + line
	}
	return line
}

// printPageFooter tells how far into a paginated listing the output is.
func printPageFooter(cmd *cobra.Command, offset, shown, total int) {
	if total == 0 {
		return
	}

	cmd.Println()
	cmd.Println(style.Faint(fmt.Sprintf("%d-%d of %s", offset+1, offset+shown, util.Quantify(total, "result", "results"))))
}
