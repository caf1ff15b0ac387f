package models

// Programs lists the accepted values for the program field of students and cohorts.
var Programs = []string{"Web Dev", "UX/UI", "Data Analytics", "Cybersecurity"}

// CohortFormats lists the accepted values for Cohort.Format.
var CohortFormats = []string{"in-person", "remote", "hybrid"}
