package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"newsroom/internal/content"
	"newsroom/internal/domain"
	"newsroom/internal/service"
)

func newArticlesCommand(ctx *commandContext) *cobra.Command {
	articlesCmd := &cobra.Command{
		Use:   "articles",
		Short: "Inspect published articles",
	}

	var category string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd.Context(), ctx.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			articles := service.NewArticleService(b.articles, nil, ctx.cfg.Site.Catalog(), ctx.cfg.Site.ArticlePlaceholder, ctx.logger)

			var list []domain.Article
			if category == "" || category == ctx.cfg.Site.AllCategory {
				list, err = articles.Latest(cmd.Context())
			} else {
				list, err = articles.InCategory(cmd.Context(), category)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderArticles(list))
			return nil
		},
	}
	listCmd.Flags().StringVar(&category, "category", "", "Only list articles of this category")

	articlesCmd.AddCommand(listCmd)
	return articlesCmd
}

func newPodcastsCommand(ctx *commandContext) *cobra.Command {
	podcastsCmd := &cobra.Command{
		Use:   "podcasts",
		Short: "Inspect published videos",
	}

	podcastsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List videos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd.Context(), ctx.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			podcasts := service.NewPodcastService(b.podcasts, nil, ctx.cfg.Site.PodcastPlaceholder, ctx.logger)
			list, err := podcasts.Latest(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPodcasts(list))
			return nil
		},
	})
	return podcastsCmd
}

func renderArticles(articles []domain.Article) string {
	if len(articles) == 0 {
		return "No articles."
	}
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			a.CreatedAt.UTC().Format("2006-01-02 15:04"),
			a.Category,
			a.Title,
			a.Slug,
		})
	}
	return renderTable(
		[]string{"ID", "Created", "Category", "Title", "Slug"},
		rows,
		[]columnAlignment{alignRight},
	)
}

func renderPodcasts(podcasts []domain.Podcast) string {
	if len(podcasts) == 0 {
		return "No videos."
	}
	rows := make([][]string, 0, len(podcasts))
	for _, p := range podcasts {
		video := "-"
		if id, ok := content.VideoID(p.VideoURL); ok {
			video = id
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.CreatedAt.UTC().Format("2006-01-02 15:04"),
			p.Duration,
			p.Title,
			video,
		})
	}
	return renderTable(
		[]string{"ID", "Created", "Duration", "Title", "YouTube"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	)
}
