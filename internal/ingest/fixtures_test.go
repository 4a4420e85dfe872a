package ingest

import "dealboard/internal/workbook"

func combinedTable() workbook.Table {
	return workbook.Table{
		Name: "deals_tasks.xlsx",
		Headers: []string{
			"Regarding", "Sub-Market", "Calculated Deal Stage", "GF Submittal Date",
			"Green Folder Meeting Date", "Days to IP Expiration", "Deal Homesite Total",
			"CIC Final Approval Date", "Subject", "Status Reason", "Due Date", "Start Date",
		},
		Rows: [][]string{
			{"Oak Ridge", "North", "Due Diligence", "05/01/2024", "05/20/2024", "12", "120", "", "Survey", "In Progress", "06/03/2024", "05/01/2024"},
			{"Oak Ridge", "North", "Due Diligence", "05/01/2024", "05/20/2024", "12", "120", "", "Survey", "In Progress", "06/03/2024", "05/01/2024"},
			{"Oak Ridge", "North", "Due Diligence", "05/01/2024", "05/20/2024", "12", "120", "", "Title review", "Completed", "05/15/2024", ""},
			{"Pine Flats", "South", "Screening", "", "", "NaN", "", "", "", "", "", ""},
			{"", "East", "Screening", "", "", "", "", "", "Orphan", "Not Started", "", ""},
			{"Cedar Bend", "East", "Closing", "04/01/2024", "04/15/2024", "", "80.4", "05/10/2024", "Plat", "Not Started", "not a date", ""},
			{"Oak Ridge", "West", "Due Diligence", "05/01/2024", "05/20/2024", "12", "120", "", "Phase I", "Not Started", "", ""},
		},
	}
}

func appointmentsTable() workbook.Table {
	return workbook.Table{
		Name: "appointments.xlsx",
		Headers: []string{
			"Appointment", "Row Checksum", "Modified On", "Subject", "Regarding", "Owner",
			"Status", "Start Time", "End Time", "Description", "Location",
		},
		Rows: [][]string{
			{"guid-1", "abc", "06/01/2024", "Site walk", "Oak Ridge", "Dana", "Open", "2024-06-03 09:00", "2024-06-03 11:00", "<p>Meet at <b>gate</b></p>", "Field office"},
			{"guid-2", "def", "06/01/2024", "Kickoff", "Unknown Deal", "Lee", "Open", "2024-06-04 09:00", "", "", ""},
			{"guid-3", "ghi", "06/01/2024", "No deal", "", "Lee", "Open", "2024-06-04 09:00", "", "", ""},
		},
	}
}
