package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderField(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Roll No", "roll_number"},
		{"roll_number", "roll_number"},
		{"Student Name", "name"},
		{"Father Name", "father_name"},
		{"Father's Name", "father_name"},
		{"Email Address", "email"},
		{"Telephone", "phone"},
		{"Mobile No", "phone"},
		{"Contact", "phone"},
		{"Course", "course"},
		{"Class Time", "class_time"},
		{"Timing", "class_time"},
		{"Remarks", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, headerField(normalizeHeader(tt.header)))
		})
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("maps fuzzy headers onto rows", func(t *testing.T) {
		input := "Roll No, Student Name, Father Name, Telephone, Course, Class Time\n" +
			"101, Ali Raza, Raza Khan, 0300-1234567, IELTS, Morning\n" +
			"102, Sara Malik,, , Graphic Designing, Evening\n"

		rows, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "101", rows[0].RollNumber)
		assert.Equal(t, "Ali Raza", rows[0].Name)
		assert.Equal(t, "Raza Khan", rows[0].FatherName)
		assert.Equal(t, "0300-1234567", rows[0].Phone)
		assert.Equal(t, "IELTS", rows[0].Course)
		assert.Equal(t, "Morning", rows[0].ClassTime)
		assert.Equal(t, 2, rows[0].LineNumber)

		assert.Equal(t, "102", rows[1].RollNumber)
		assert.Empty(t, rows[1].FatherName)
		assert.Equal(t, 3, rows[1].LineNumber)
	})

	t.Run("tolerates ragged rows", func(t *testing.T) {
		input := "roll,name,course\n201,Bilal\n"
		rows, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Bilal", rows[0].Name)
		assert.Empty(t, rows[0].Course)
	})

	t.Run("rejects headers without roll or name", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("course,phone\nIELTS,111\n"))
		require.Error(t, err)
	})
}

func TestSkipCourse(t *testing.T) {
	assert.True(t, skipCourse("Diploma in IT"))
	assert.True(t, skipCourse("DIPLOMA IN IT (Evening)"))
	assert.True(t, skipCourse("Registration"))
	assert.True(t, skipCourse("registration fee"))
	assert.False(t, skipCourse("One Year Diploma"))
	assert.False(t, skipCourse("IELTS"))
}

func TestClassifyRow(t *testing.T) {
	existing := map[string]bool{"101": true}

	t.Run("existing roll number is a duplicate, never an import", func(t *testing.T) {
		row := ImportRow{RollNumber: "101", Name: "Ayesha", Course: "IELTS"}
		assert.Equal(t, rowDuplicate, classifyRow(row, existing))
	})

	t.Run("fresh roll number imports", func(t *testing.T) {
		row := ImportRow{RollNumber: "102", Name: "Bilal", Course: "IELTS"}
		assert.Equal(t, rowImport, classifyRow(row, existing))
	})

	t.Run("second occurrence within one file is a duplicate", func(t *testing.T) {
		rolls := map[string]bool{}
		row := ImportRow{RollNumber: "301", Name: "Sana", Course: "IELTS"}
		assert.Equal(t, rowImport, classifyRow(row, rolls))
		rolls["301"] = true
		assert.Equal(t, rowDuplicate, classifyRow(row, rolls))
	})

	t.Run("blank row is skipped", func(t *testing.T) {
		assert.Equal(t, rowEmpty, classifyRow(ImportRow{Phone: "111"}, existing))
	})

	t.Run("missing roll or name fails", func(t *testing.T) {
		assert.Equal(t, rowMissingFields, classifyRow(ImportRow{Name: "NoRoll", Course: "IELTS"}, existing))
		assert.Equal(t, rowMissingFields, classifyRow(ImportRow{RollNumber: "103", Course: "IELTS"}, existing))
	})

	t.Run("skip-listed course is skipped even for a known roll", func(t *testing.T) {
		row := ImportRow{RollNumber: "101", Name: "Ayesha", Course: "Registration"}
		assert.Equal(t, rowSkippedCourse, classifyRow(row, existing))
	})
}

func TestFeeDueDate(t *testing.T) {
	due := FeeDueDate(2026, time.March)
	assert.Equal(t, 2026, due.Year())
	assert.Equal(t, time.March, due.Month())
	assert.Equal(t, 10, due.Day())
	assert.Equal(t, 0, due.Hour())
}
