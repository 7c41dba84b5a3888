package keywords_test

import (
	"encoding/json"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/spacesedan/aspectflow/internal/keywords"
	"github.com/spacesedan/aspectflow/internal/models"
)

func TestExtract(t *testing.T) {
	convey.Convey("Given a set of reviews", t, func() {
		docs := []string{
			"The cheese pie was cold and the service slow",
			"Cold pie again, slow staff",
			"Cheese was fine",
		}

		convey.Convey("When extracting the top three terms", func() {
			got := keywords.Extract(docs, 3)

			convey.Convey("Then terms are ordered by count with alphabetical ties", func() {
				convey.So(got, convey.ShouldResemble, models.KeywordCounts{
					{Keyword: "cheese", Count: 2},
					{Keyword: "cold", Count: 2},
					{Keyword: "pie", Count: 2},
				})
			})
		})

		convey.Convey("When extracting without a limit", func() {
			got := keywords.Extract(docs, 0)

			convey.Convey("Then stopwords and single letters are dropped", func() {
				for _, kc := range got {
					convey.So(keywords.IsStopWord(kc.Keyword), convey.ShouldBeFalse)
					convey.So(len(kc.Keyword), convey.ShouldBeGreaterThan, 1)
				}
				convey.So(got.Keywords(), convey.ShouldContain, "staff")
				convey.So(got.Keywords(), convey.ShouldNotContain, "the")
			})
		})

		convey.Convey("When extracting twice", func() {
			convey.So(keywords.Extract(docs, 5), convey.ShouldResemble, keywords.Extract(docs, 5))
		})
	})

	convey.Convey("Given no documents", t, func() {
		convey.So(keywords.Extract(nil, 5), convey.ShouldBeEmpty)
		convey.So(keywords.Extract([]string{"the and of"}, 5), convey.ShouldBeEmpty)
	})
}

func TestTokenize(t *testing.T) {
	convey.Convey("Given reviews with markup-like text", t, func() {
		convey.Convey("Words inside angle brackets are kept", func() {
			convey.So(keywords.Extract([]string{"portions were <small> and cold"}, 0).Keywords(),
				convey.ShouldResemble, []string{"cold", "portions", "small"})
		})

		convey.Convey("Underscores stay inside a token", func() {
			convey.So(keywords.Tokenize("great pie_crust_lover here"),
				convey.ShouldResemble, []string{"great", "pie_crust_lover"})
		})

		convey.Convey("Links are dropped but their text is kept", func() {
			convey.So(keywords.Tokenize("best [baklava](https://example.com/menu) www.example.com"),
				convey.ShouldResemble, []string{"best", "baklava"})
		})
	})
}

func TestKeywordCountsJSON(t *testing.T) {
	convey.Convey("Keyword counts serialize in count order", t, func() {
		raw, err := json.Marshal(models.KeywordCounts{{Keyword: "slow", Count: 4}, {Keyword: "cold", Count: 1}})
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(raw), convey.ShouldEqual, `{"slow":4,"cold":1}`)
	})
}
