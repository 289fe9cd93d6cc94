package reconcile_test

import (
	"testing"

	"github.com/okian/squadrate/internal/domain/model"
	"github.com/okian/squadrate/internal/domain/reconcile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReconciler(t *testing.T) {
	Convey("Given a new Reconciler", t, func() {
		r := reconcile.New(reconcile.WithCapacity(4))

		Convey("Then it should start empty", func() {
			So(r.Size(), ShouldEqual, 0)
			So(r.Dropped(), ShouldEqual, 0)
		})

		Convey("When a key is recorded twice", func() {
			first := r.SeenAndRecord("sub-1")
			second := r.SeenAndRecord("sub-1")

			Convey("Then only the first occurrence wins", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(r.Size(), ShouldEqual, 1)
				So(r.Dropped(), ShouldEqual, 1)
			})
		})

		Convey("When two instances are used", func() {
			other := reconcile.New()
			r.SeenAndRecord("sub-1")

			Convey("Then they share no state", func() {
				So(other.SeenAndRecord("sub-1"), ShouldBeFalse)
			})
		})
	})
}

func TestFirstSelfAssessments(t *testing.T) {
	Convey("Given self-assessments with retried duplicates", t, func() {
		rows := []model.SelfAssessmentRow{
			{SubmissionID: "a", SelfPlayer: "X", SelfScore: 3.5},
			{SubmissionID: "b", SelfPlayer: "Y", SelfScore: 4},
			{SubmissionID: "a", SelfPlayer: "X", SelfScore: 5},
			{SubmissionID: "a", SelfPlayer: "Z", SelfScore: 2},
		}

		Convey("When reconciling", func() {
			out, dropped := reconcile.FirstSelfAssessments(rows)

			Convey("Then the composite key keeps the first value", func() {
				So(dropped, ShouldEqual, 1)
				So(len(out), ShouldEqual, 3)
				So(out[0].SelfScore, ShouldEqual, 3.5)
				So(out[1].SelfPlayer, ShouldEqual, "Y")
				So(out[2].SelfPlayer, ShouldEqual, "Z")
			})
		})
	})
}

func TestFirstRatings(t *testing.T) {
	Convey("Given a submission that was stored twice", t, func() {
		rows := []model.EvaluationRow{
			{SubmissionID: "s1", Player: "A", Technique: 4},
			{SubmissionID: "s1", Player: "B", Technique: 3},
			{SubmissionID: "s1", Player: "A", Technique: 1},
			{SubmissionID: "s2", Player: "A", Technique: 5},
			{SubmissionID: "", Player: "A", Technique: 2},
			{SubmissionID: "", Player: "A", Technique: 2},
		}

		Convey("When reconciling ratings", func() {
			out, dropped := reconcile.FirstRatings(rows)

			Convey("Then each player keeps one rating per submission", func() {
				So(dropped, ShouldEqual, 1)
				So(len(out), ShouldEqual, 5)
				So(out[0].Technique, ShouldEqual, 4)
				So(out[2].SubmissionID, ShouldEqual, "s2")
			})

			Convey("And rows without a submission id are all kept", func() {
				So(out[3].SubmissionID, ShouldEqual, "")
				So(out[4].SubmissionID, ShouldEqual, "")
			})
		})
	})
}

func TestFirstPerSubmission(t *testing.T) {
	Convey("Given evaluation rows of several submissions", t, func() {
		rows := []model.EvaluationRow{
			{SubmissionID: "s2", Player: "A", TeamOverall: 3, Notes: "first"},
			{SubmissionID: "s1", Player: "A", TeamOverall: 5},
			{SubmissionID: "s2", Player: "B", TeamOverall: 1, Notes: "later"},
			{SubmissionID: "", Player: "C", TeamOverall: 4},
			{SubmissionID: "s1", Player: "B", TeamOverall: 5},
		}

		Convey("When reducing to one row per submission", func() {
			out := reconcile.FirstPerSubmission(rows)

			Convey("Then first-seen rows remain in encounter order", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].SubmissionID, ShouldEqual, "s2")
				So(out[0].Notes, ShouldEqual, "first")
				So(out[0].TeamOverall, ShouldEqual, 3)
				So(out[1].SubmissionID, ShouldEqual, "s1")
			})
		})
	})
}

func TestSelfAuthors(t *testing.T) {
	Convey("Given self-assessments", t, func() {
		rows := []model.SelfAssessmentRow{
			{SubmissionID: "a", SelfPlayer: "X"},
			{SubmissionID: "a", SelfPlayer: "Y"},
			{SubmissionID: "b", SelfPlayer: ""},
			{SubmissionID: "", SelfPlayer: "Q"},
		}

		Convey("Then each submission maps to its first author", func() {
			authors := reconcile.SelfAuthors(rows)
			So(authors, ShouldResemble, map[string]string{"a": "X"})
		})
	})
}

func TestSelfKey(t *testing.T) {
	Convey("Given composite keys", t, func() {
		Convey("Then submission and author are both significant", func() {
			So(reconcile.SelfKey("a", "X"), ShouldNotEqual, reconcile.SelfKey("a", "Y"))
			So(reconcile.SelfKey("a", "X"), ShouldNotEqual, reconcile.SelfKey("b", "X"))
			So(reconcile.SubmissionKey("a"), ShouldEqual, "a")
		})
	})
}
