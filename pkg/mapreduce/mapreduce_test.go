package mapreduce

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/analytics"
)

func rec(student string, day int) models.FeeRecord {
	return models.FeeRecord{StudentID: student, SubmissionDay: day}
}

func TestMap(t *testing.T) {
	records := []models.FeeRecord{
		rec("1", 5), rec("2", 10), rec("1", 5), rec("1", 7), rec("2", 3), rec("2", 10),
	}

	got, err := Map(records)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}

	want := models.Result{
		"1": {MostCommonDay: 5, SubmissionCount: 2},
		"2": {MostCommonDay: 10, SubmissionCount: 2},
	}
	if !got.Equal(want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}
}

func TestMap_SingleRecord(t *testing.T) {
	got, err := Map([]models.FeeRecord{rec("S1", 7)})
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	want := models.Result{"S1": {MostCommonDay: 7, SubmissionCount: 1}}
	if !got.Equal(want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}
}

func TestMap_TieBreak(t *testing.T) {
	got, err := Map([]models.FeeRecord{rec("1", 5), rec("1", 3), rec("1", 5), rec("1", 3)})
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if got["1"] != (models.DayMode{MostCommonDay: 3, SubmissionCount: 2}) {
		t.Errorf("Map() tie = %+v, want day 3 count 2", got["1"])
	}
}

func TestMap_EveryStudentOnce(t *testing.T) {
	records := []models.FeeRecord{rec("a", 1), rec("b", 2), rec("c", 3), rec("a", 4), rec("c", 3)}
	got, err := Map(records)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len(Map()) = %d, want 3", len(got))
	}
	for _, id := range []string{"a", "b", "c"} {
		if got[id].SubmissionCount < 1 {
			t.Errorf("student %s has count %d, want >= 1", id, got[id].SubmissionCount)
		}
	}
}

func TestMap_BadDayNamesStudent(t *testing.T) {
	_, err := Map([]models.FeeRecord{rec("1", 3), rec("7", 40)})
	if !errors.Is(err, analytics.ErrDayOutOfRange) {
		t.Fatalf("Map() error = %v, want ErrDayOutOfRange", err)
	}
	if want := "student_id 7"; len(err.Error()) < len(want) || err.Error()[:len(want)] != want {
		t.Errorf("error = %q, want prefix %q", err.Error(), want)
	}
}

func TestReduce_DisjointKeys(t *testing.T) {
	a := models.Result{"S1": {MostCommonDay: 1, SubmissionCount: 2}}
	b := models.Result{"S2": {MostCommonDay: 9, SubmissionCount: 1}}

	got := Reduce([]models.Result{a, b})
	want := models.Result{
		"S1": {MostCommonDay: 1, SubmissionCount: 2},
		"S2": {MostCommonDay: 9, SubmissionCount: 1},
	}
	if !got.Equal(want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}
}

func TestReduce_LastWriteWins(t *testing.T) {
	a := models.Result{"S1": {MostCommonDay: 1, SubmissionCount: 5}}
	b := models.Result{"S1": {MostCommonDay: 2, SubmissionCount: 1}}

	got := Reduce([]models.Result{a, b})
	if got["S1"] != (models.DayMode{MostCommonDay: 2, SubmissionCount: 1}) {
		t.Errorf("Reduce() S1 = %+v, want later part", got["S1"])
	}
}

func TestReduce_Empty(t *testing.T) {
	if got := Reduce(nil); len(got) != 0 {
		t.Errorf("Reduce(nil) = %v, want empty", got)
	}
}

func TestDiff(t *testing.T) {
	seq := models.Result{
		"1": {MostCommonDay: 3, SubmissionCount: 2},
		"2": {MostCommonDay: 4, SubmissionCount: 1},
		"3": {MostCommonDay: 5, SubmissionCount: 1},
	}
	par := models.Result{
		"1": {MostCommonDay: 3, SubmissionCount: 2},
		"2": {MostCommonDay: 9, SubmissionCount: 1},
		"4": {MostCommonDay: 1, SubmissionCount: 1},
	}

	got := Diff(seq, par)
	if len(got) != 3 {
		t.Fatalf("len(Diff()) = %d, want 3: %+v", len(got), got)
	}
	ids := []string{got[0].StudentID, got[1].StudentID, got[2].StudentID}
	if !reflect.DeepEqual(ids, []string{"2", "3", "4"}) {
		t.Errorf("Diff() ids = %v, want [2 3 4]", ids)
	}
	if got[1].Parallel != nil {
		t.Errorf("student 3 missing from parallel, got %+v", got[1].Parallel)
	}
	if got[2].Sequential != nil {
		t.Errorf("student 4 missing from sequential, got %+v", got[2].Sequential)
	}
	if len(Diff(seq, seq)) != 0 {
		t.Error("Diff of identical results should be empty")
	}
}

func TestTopStudents(t *testing.T) {
	results := models.Result{
		"1": {MostCommonDay: 3, SubmissionCount: 1},
		"2": {MostCommonDay: 4, SubmissionCount: 5},
		"3": {MostCommonDay: 5, SubmissionCount: 5},
		"4": {MostCommonDay: 6, SubmissionCount: 2},
	}

	top := TopStudents(results, 3)
	var ids []string
	for _, s := range top {
		ids = append(ids, s.StudentID)
	}
	if !reflect.DeepEqual(ids, []string{"2", "3", "4"}) {
		t.Errorf("TopStudents() = %v, want [2 3 4]", ids)
	}

	labels := TopStudentLabels(results, 1)
	if !reflect.DeepEqual(labels, []string{"2:4:5"}) {
		t.Errorf("TopStudentLabels() = %v, want [2:4:5]", labels)
	}

	if got := TopStudents(results, 10); len(got) != 4 {
		t.Errorf("TopStudents(10) len = %d, want 4", len(got))
	}
}

func TestSample(t *testing.T) {
	results := models.Result{
		"10": {MostCommonDay: 1, SubmissionCount: 1},
		"2":  {MostCommonDay: 2, SubmissionCount: 1},
		"1":  {MostCommonDay: 3, SubmissionCount: 1},
	}

	got := Sample(results, 2)
	if len(got) != 2 || got[0].StudentID != "1" || got[1].StudentID != "2" {
		t.Errorf("Sample(2) = %+v, want students 1 and 2", got)
	}
	if all := Sample(results, 0); len(all) != 3 {
		t.Errorf("Sample(0) len = %d, want 3", len(all))
	}
}
