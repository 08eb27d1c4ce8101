package validate_test

import (
	"testing"

	"github.com/neurotrack/progression/internal/domain/scores"
	"github.com/neurotrack/progression/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func vec(mmse, cdrGlobal, cdrSOB, adas float64) scores.ScoreVector {
	return scores.ScoreVector{MMSE: mmse, CDRGlobal: cdrGlobal, CDRSOB: cdrSOB, ADASCog: adas}
}

func TestValidate(t *testing.T) {
	Convey("Given a validator", t, func() {
		val := validate.New()

		Convey("When validating an empty sequence", func() {
			rep := val.Validate(scores.Sequence{})

			Convey("Then every check passes vacuously with zero ranges", func() {
				So(rep.AllValid, ShouldBeTrue)
				So(rep.MMSEValid, ShouldBeTrue)
				So(rep.ADASMonotonic, ShouldBeTrue)
				So(rep.MMSERange, ShouldResemble, validate.Range{0, 0})
				So(rep.ADASRange, ShouldResemble, validate.Range{0, 0})
			})
		})

		Convey("When validating a clean progression", func() {
			seq := scores.Sequence{
				vec(20, 1, 6, 25),
				vec(18, 1, 7, 30),
				vec(15, 2, 9, 36),
			}
			rep := val.Validate(seq)

			Convey("Then all checks pass", func() {
				So(rep.AllValid, ShouldBeTrue)
				So(rep.ADASMonotonic, ShouldBeTrue)
				So(rep.MMSEMonotonicDecreasing, ShouldBeTrue)
			})

			Convey("Then observed ranges cover the sequence", func() {
				So(rep.ADASRange, ShouldResemble, validate.Range{25, 36})
				So(rep.MMSERange, ShouldResemble, validate.Range{15, 20})
				So(rep.CDRSOBRange, ShouldResemble, validate.Range{6, 9})
				So(rep.CDRGlobalRange, ShouldResemble, validate.Range{1, 2})
			})
		})

		Convey("When a score leaves its instrument range", func() {
			seq := scores.Sequence{
				vec(20, 1, 6, 25),
				vec(35, 1, 7, 30),
			}
			rep := val.Validate(seq)

			Convey("Then the range check and aggregate fail", func() {
				So(rep.MMSEValid, ShouldBeFalse)
				So(rep.AllValid, ShouldBeFalse)
			})

			Convey("Then the observed range still reports the offender", func() {
				So(rep.MMSERange, ShouldResemble, validate.Range{20, 35})
			})
		})

		Convey("When CDR-Global is not a categorical stage", func() {
			seq := scores.Sequence{vec(20, 1.5, 6, 25)}
			rep := val.Validate(seq)

			Convey("Then the categorical check and aggregate fail", func() {
				So(rep.CDRGlobalValid, ShouldBeFalse)
				So(rep.AllValid, ShouldBeFalse)
			})
		})

		Convey("When ADAS-Cog decreases", func() {
			seq := scores.Sequence{
				vec(20, 1, 6, 30),
				vec(18, 1, 7, 25),
			}
			rep := val.Validate(seq)

			Convey("Then monotonicity and the aggregate fail", func() {
				So(rep.ADASMonotonic, ShouldBeFalse)
				So(rep.AllValid, ShouldBeFalse)
			})
		})

		Convey("When only MMSE increases over time", func() {
			seq := scores.Sequence{
				vec(15, 1, 6, 25),
				vec(18, 1, 7, 30),
			}
			rep := val.Validate(seq)

			Convey("Then the MMSE monotonicity flag trips", func() {
				So(rep.MMSEMonotonicDecreasing, ShouldBeFalse)
			})

			Convey("Then the aggregate still passes", func() {
				// MMSE direction is reported but not aggregated; generated
				// trajectories routinely trip it.
				So(rep.AllValid, ShouldBeTrue)
			})
		})
	})
}
