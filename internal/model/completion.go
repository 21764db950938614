package model

// completionFields is the fixed denominator of ProfileCompletion. It stays 10
// even when the user has no profile yet, which caps such users at 50%.
const completionFields = 10

// ProfileCompletion estimates how complete a user's record is, as an integer
// percentage in [0, 100].
//
// Five account fields always count: kurdish name, region, field of study,
// phone number, current city. Five profile fields count only when profile is
// non-nil: biography, CV document, work experience, technical skills,
// language skills. A field counts when it is non-empty.
//
// The result is floor(filled * 100 / 10). Pure: no I/O, no mutation.
func ProfileCompletion(user *User, profile *Profile) int {
	if user == nil {
		return 0
	}

	filled := countNonEmpty(
		user.KurdishName,
		string(user.Region),
		user.FieldOfStudy,
		user.PhoneNumber,
		user.CurrentCity,
	)
	if profile != nil {
		filled += countNonEmpty(
			profile.Biography,
			profile.CVDocument,
			profile.WorkExperience,
			profile.TechnicalSkills,
			profile.LanguageSkills,
		)
	}

	return filled * 100 / completionFields
}

func countNonEmpty(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
