package rowstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/squadrate/internal/adapters/rowstore"
	. "github.com/smartystreets/goconvey/convey"
)

// scriptedLister serves pages keyed by token.
type scriptedLister struct {
	pages map[string]rowstore.Page
	errAt string
	calls []string
}

func (s *scriptedLister) ListPage(_ context.Context, _ string, token string) (rowstore.Page, error) {
	s.calls = append(s.calls, token)
	if s.errAt != "" && token == s.errAt {
		return rowstore.Page{}, errors.New("boom")
	}
	return s.pages[token], nil
}

func row(id int) rowstore.RawRow { return rowstore.RawRow{"id": id} }

func TestFetchAll(t *testing.T) {
	Convey("Given a table spread over several pages", t, func() {
		ctx := context.Background()
		l := &scriptedLister{pages: map[string]rowstore.Page{
			"":   {Rows: []rowstore.RawRow{row(1), row(2)}, Next: "p2"},
			"p2": {Rows: []rowstore.RawRow{}, Next: "p3"},
			"p3": {Rows: []rowstore.RawRow{row(3)}},
		}}

		Convey("When fetching everything", func() {
			rows, err := rowstore.FetchAll(ctx, l, "responses")

			Convey("Then every row is returned in order", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldResemble, []rowstore.RawRow{row(1), row(2), row(3)})
			})

			Convey("And an empty page with a continuation is followed", func() {
				So(l.calls, ShouldResemble, []string{"", "p2", "p3"})
			})
		})

		Convey("When a later page fails", func() {
			l.errAt = "p3"
			rows, err := rowstore.FetchAll(ctx, l, "responses")

			Convey("Then the partial result is discarded", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "responses")
				So(rows, ShouldBeNil)
			})
		})

		Convey("When a continuation points back to a visited page", func() {
			l.pages["p3"] = rowstore.Page{Rows: []rowstore.RawRow{row(3)}, Next: "p2"}
			rows, err := rowstore.FetchAll(ctx, l, "responses")

			Convey("Then the loop is reported", func() {
				So(errors.Is(err, rowstore.ErrPaginationLoop), ShouldBeTrue)
				So(rows, ShouldBeNil)
			})
		})

		Convey("When the context is already canceled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			rows, err := rowstore.FetchAll(cctx, l, "responses")

			Convey("Then no page is requested", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(rows, ShouldBeNil)
				So(l.calls, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an empty table", t, func() {
		l := &scriptedLister{pages: map[string]rowstore.Page{"": {}}}

		Convey("Then fetching returns no rows and no error", func() {
			rows, err := rowstore.FetchAll(context.Background(), l, "responses")
			So(err, ShouldBeNil)
			So(rows, ShouldBeEmpty)
		})
	})
}
