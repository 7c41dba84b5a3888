package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/spacesedan/aspectflow/config"
	"github.com/spacesedan/aspectflow/internal/models"
	"github.com/spacesedan/aspectflow/internal/pipeline"
	"github.com/spacesedan/aspectflow/internal/processing"
	"github.com/spacesedan/aspectflow/internal/report"
	"github.com/spacesedan/aspectflow/internal/sentiment"
)

// keyedScorer returns a fixed class per review text.
type keyedScorer map[string]int

func (k keyedScorer) Score(_ context.Context, text string) (int, error) {
	if c, ok := k[text]; ok {
		return c, nil
	}
	return 2, nil
}

func setup(t *testing.T, input string) *config.Config {
	dir := t.TempDir()
	in := filepath.Join(dir, "reviews.json")
	if err := os.WriteFile(in, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New()
	cfg.InputFile = in
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.WordCloud = false
	cfg.MetricsTextfile = filepath.Join(dir, "aspectflow.prom")
	return cfg
}

func TestRun(t *testing.T) {
	convey.Convey("Given a small review file", t, func() {
		input := `[
  {"author_name": "A", "review": "The food was cold and the price too high"},
  {"author_name": "B", "review": "Cold cheese pie, expensive"},
  {"author_name": "C", "review": "Friendly staff, nice seating"},
  {"author_name": "D", "review": null}
]`
		cfg := setup(t, input)
		scorer := keyedScorer{
			"The food was cold and the price too high": 0,
			"Cold cheese pie, expensive":               1,
			"Friendly staff, nice seating":             4,
		}

		convey.Convey("When the pipeline runs", func() {
			var out bytes.Buffer
			res, err := pipeline.Run(context.Background(), cfg, scorer, &out)

			convey.Convey("Then ratings, averages and suggestions are computed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(res.Table), convey.ShouldEqual, 4)
				convey.So(res.Table[0].Aspects[models.AspectFood], convey.ShouldEqual, 1)
				convey.So(res.Table[2].Aspects[models.AspectService], convey.ShouldEqual, 5)
				convey.So(res.Table[3].Aspects, convey.ShouldResemble, models.NeutralScores())

				// food: 1, 2, 3, 3
				convey.So(res.Averages[models.AspectFood], convey.ShouldEqual, 2.25)
				convey.So(res.Suggestions, convey.ShouldContainKey, models.AspectFood)
				convey.So(res.Suggestions, convey.ShouldContainKey, models.AspectPricing)
				convey.So(res.Suggestions, convey.ShouldNotContainKey, models.AspectService)
				convey.So(res.Suggestions[models.AspectFood].Keywords[0].Keyword, convey.ShouldEqual, "cold")
			})

			convey.Convey("Then the outputs and summary are written", func() {
				for _, name := range []string{report.ReviewsJSONFile, report.ReviewsCSVFile, report.SummaryFile, report.SuggestionsFile} {
					_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
					convey.So(err, convey.ShouldBeNil)
				}
				_, err := os.Stat(cfg.MetricsTextfile)
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "Average Ratings by Aspect:")
				convey.So(out.String(), convey.ShouldContainSubstring, "Food: 2.25")
			})

			convey.Convey("Then a second run produces the same suggestions", func() {
				again, err := pipeline.Run(context.Background(), cfg, scorer, &bytes.Buffer{})
				convey.So(err, convey.ShouldBeNil)
				convey.So(again.Suggestions, convey.ShouldResemble, res.Suggestions)
			})
		})

		convey.Convey("When the scorer fails under the abort policy", func() {
			boom := errors.New("model down")
			failing := sentiment.ScorerFunc(func(context.Context, string) (int, error) { return 0, boom })
			_, err := pipeline.Run(context.Background(), cfg, failing, &bytes.Buffer{})

			convey.Convey("Then the run aborts without outputs", func() {
				convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
				_, statErr := os.Stat(cfg.OutputDir)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given an empty review list", t, func() {
		cfg := setup(t, `[]`)
		_, err := pipeline.Run(context.Background(), cfg, keyedScorer{}, &bytes.Buffer{})

		convey.Convey("Then aggregation fails with a data error and nothing is written", func() {
			convey.So(errors.Is(err, processing.ErrEmptyTable), convey.ShouldBeTrue)
			_, statErr := os.Stat(cfg.OutputDir)
			convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a missing input file", t, func() {
		cfg := config.New()
		cfg.InputFile = filepath.Join(t.TempDir(), "missing.json")
		_, err := pipeline.Run(context.Background(), cfg, keyedScorer{}, &bytes.Buffer{})
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestBuildScorer(t *testing.T) {
	convey.Convey("The vader backend builds offline", t, func() {
		cfg := config.New()
		cfg.Scorer = config.ScorerVader
		scorer, closeFn, err := pipeline.BuildScorer(context.Background(), cfg)
		defer closeFn()
		convey.So(err, convey.ShouldBeNil)
		convey.So(scorer, convey.ShouldNotBeNil)
	})

	convey.Convey("Unknown backends are rejected", t, func() {
		cfg := config.New()
		cfg.Scorer = "magic"
		_, closeFn, err := pipeline.BuildScorer(context.Background(), cfg)
		defer closeFn()
		convey.So(errors.Is(err, sentiment.ErrUnknownScorer), convey.ShouldBeTrue)
	})
}
