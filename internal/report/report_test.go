package report_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/spacesedan/aspectflow/internal/models"
	"github.com/spacesedan/aspectflow/internal/report"
)

func sampleResult() report.Result {
	table := []models.AnnotatedReview{
		{
			Review: models.Review{
				Fields: []models.ReviewField{
					{Key: "author_name", Value: json.RawMessage(`"Sam"`)},
					{Key: "review", Value: json.RawMessage(`"Cold pie, \"meh\""`)},
				},
				Text:    `Cold pie, "meh"`,
				HasText: true,
			},
			Aspects: models.AspectScores{"food": 2, "service": 3, "atmosphere": 3, "pricing": 3},
		},
		{
			Review: models.Review{
				Fields: []models.ReviewField{
					{Key: "review", Value: json.RawMessage(`null`)},
					{Key: "rating", Value: json.RawMessage(`4`)},
				},
			},
			Aspects: models.NeutralScores(),
		},
	}
	return report.Result{
		Table:    table,
		Averages: models.AspectAverages{"food": 2.5, "service": 3, "atmosphere": 3, "pricing": 3},
		Suggestions: models.Suggestions{
			"food": {
				AverageRating: 2.5,
				Keywords:      models.KeywordCounts{{Keyword: "cold", Count: 1}, {Keyword: "meh", Count: 1}, {Keyword: "pie", Count: 1}},
				Text:          "Focus on improving food. Consider addressing concerns around: cold, meh, pie.",
			},
		},
		TopKeywords: models.KeywordCounts{{Keyword: "cold", Count: 1}},
	}
}

func TestColumns(t *testing.T) {
	convey.Convey("Columns follow first-seen order with aspects last", t, func() {
		cols := report.Columns(sampleResult().Table)
		convey.So(cols, convey.ShouldResemble,
			[]string{"author_name", "review", "rating", "food", "service", "atmosphere", "pricing"})
	})
}

func TestWrite(t *testing.T) {
	convey.Convey("Given a finished run", t, func() {
		dir := t.TempDir()
		res := sampleResult()

		convey.Convey("When writing outputs", func() {
			paths, err := report.Write(dir, res)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(paths), convey.ShouldEqual, 4)

			convey.Convey("Then only the four fixed files exist", func() {
				entries, err := os.ReadDir(dir)
				convey.So(err, convey.ShouldBeNil)
				names := []string{}
				for _, e := range entries {
					names = append(names, e.Name())
				}
				convey.So(names, convey.ShouldResemble, []string{
					report.SummaryFile, report.SuggestionsFile, report.ReviewsCSVFile, report.ReviewsJSONFile,
				})
			})

			convey.Convey("Then records fill absent columns with null", func() {
				raw, err := os.ReadFile(filepath.Join(dir, report.ReviewsJSONFile))
				convey.So(err, convey.ShouldBeNil)
				var records []map[string]any
				convey.So(json.Unmarshal(raw, &records), convey.ShouldBeNil)
				convey.So(len(records), convey.ShouldEqual, 2)
				convey.So(records[0]["rating"], convey.ShouldBeNil)
				convey.So(records[0]["food"], convey.ShouldEqual, float64(2))
				convey.So(records[1]["author_name"], convey.ShouldBeNil)
				convey.So(strings.Index(string(raw), `"author_name"`), convey.ShouldBeLessThan, strings.Index(string(raw), `"food"`))
			})

			convey.Convey("Then the csv has a header and raw strings", func() {
				raw, err := os.ReadFile(filepath.Join(dir, report.ReviewsCSVFile))
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
				convey.So(lines[0], convey.ShouldEqual, "author_name,review,rating,food,service,atmosphere,pricing")
				convey.So(lines[1], convey.ShouldEqual, `Sam,"Cold pie, ""meh""",,2,3,3,3`)
				convey.So(lines[2], convey.ShouldEqual, `,,4,3,3,3,3`)
			})

			convey.Convey("Then summaries keep aspect order", func() {
				raw, err := os.ReadFile(filepath.Join(dir, report.SummaryFile))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldEqual,
					"{\n  \"food\": 2.5,\n  \"service\": 3,\n  \"atmosphere\": 3,\n  \"pricing\": 3\n}")

				raw, err = os.ReadFile(filepath.Join(dir, report.SuggestionsFile))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldContainSubstring, `"keywords_from_negative_reviews": {`)
				convey.So(string(raw), convey.ShouldContainSubstring, `"cold": 1`)
			})
		})
	})
}

func TestWriteRenameFailure(t *testing.T) {
	convey.Convey("Given an output directory where one target cannot be replaced", t, func() {
		dir := t.TempDir()
		blocker := filepath.Join(dir, report.ReviewsCSVFile)
		convey.So(os.Mkdir(blocker, 0o755), convey.ShouldBeNil)
		convey.So(os.WriteFile(filepath.Join(blocker, "keep"), []byte("x"), 0o644), convey.ShouldBeNil)

		convey.Convey("When writing outputs", func() {
			paths, err := report.Write(dir, sampleResult())

			convey.Convey("Then the error leaves no output or staged files behind", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(paths, convey.ShouldBeEmpty)

				entries, err := os.ReadDir(dir)
				convey.So(err, convey.ShouldBeNil)
				names := []string{}
				for _, e := range entries {
					names = append(names, e.Name())
				}
				convey.So(names, convey.ShouldResemble, []string{report.ReviewsCSVFile})
			})
		})
	})
}

func TestPrintSummary(t *testing.T) {
	convey.Convey("The console summary lists averages and suggestions", t, func() {
		var buf bytes.Buffer
		report.PrintSummary(&buf, sampleResult(), []string{"out.json"})
		out := buf.String()
		convey.So(out, convey.ShouldContainSubstring, "Top Keywords: cold=1")
		convey.So(out, convey.ShouldContainSubstring, "Food: 2.50")
		convey.So(out, convey.ShouldContainSubstring, "Food (Average Rating: 2.50):")
		convey.So(out, convey.ShouldContainSubstring, "Keywords from Negative Reviews: cold, meh, pie")
	})
}

func TestWordCloud(t *testing.T) {
	convey.Convey("Given keyword counts", t, func() {
		words := models.KeywordCounts{{Keyword: "pie", Count: 10}, {Keyword: "cold", Count: 1}}

		convey.Convey("The most frequent word is emphasized", func() {
			cloud := report.RenderWordCloud(words)
			convey.So(cloud, convey.ShouldContainSubstring, "PIE")
			convey.So(cloud, convey.ShouldContainSubstring, "cold")
		})

		convey.Convey("An empty set prints nothing", func() {
			var buf bytes.Buffer
			report.ShowWordCloud(&buf, nil)
			convey.So(buf.Len(), convey.ShouldEqual, 0)
		})
	})
}
