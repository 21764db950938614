package i18n

// messages maps English source strings (gettext msgids) to their Kurdish
// translations. It backs T and Label at runtime and is what cmd/translate
// writes into .po catalogs.
var messages = map[Locale]map[string]string{
	Sorani: {
		"Home":                    "ماڵەوە",
		"Dashboard":               "پانێل",
		"Destinations":            "شوێنەکانی خوێندن",
		"Resume Builder":          "درووستکردنی ژیان نامە",
		"Communications":          "پەیوەندیکردن",
		"Resources":               "سەرچاوەکان",
		"Login":                   "چوونەژوورەوە",
		"Register":                "خۆتۆمارکردن",
		"Logout":                  "چوونەدەرەوە",
		"Profile":                 "پرۆفایل",
		"Rojhelat":                "ڕۆژهەڵات",
		"Başûr":                   "باشوور",
		"Bakûr":                   "باکوور",
		"Rojava":                  "ڕۆژئاوا",
		"Diaspora":                "دەرەوەی وڵات",
		"Bachelor's Degree":       "بەکالۆریۆس",
		"Master's Degree":         "ماستەر",
		"PhD":                     "دکتۆرا",
		"Postdoctoral":            "پاش دکتۆرا",
		"Certificate":             "بڕوانامە",
		"Diploma":                 "دیپلۆما",
		"Professional Degree":     "بڕوانامەی پیشەیی",
		"Countries":               "وڵاتان",
		"Universities":            "زانکۆکان",
		"Programs":                "بەرنامەکان",
		"Scholarships":            "بورسەکان",
		"City":                    "شار",
		"Country":                 "وڵات",
		"Apply":                   "داخوازینامە",
		"Application":             "داخوازینامە",
		"Applications":            "داخوازینامەکان",
		"Status":                  "دۆخ",
		"Deadline":                "کاتی کۆتایی",
		"Requirements":            "پێداویستیەکان",
		"Search":                  "گەڕان",
		"Filter":                  "پاڵاوتن",
		"View":                    "بینین",
		"Edit":                    "دەستکاریکردن",
		"Delete":                  "سڕینەوە",
		"Save":                    "پاشەکەوتکردن",
		"Cancel":                  "هەڵوەشاندنەوە",
		"Submit":                  "ناردن",
		"Create":                  "درووستکردن",
		"Update":                  "نوێکردنەوە",
		"Name":                    "ناو",
		"First Name":              "ناوی یەکەم",
		"Last Name":               "ناوی کۆتایی",
		"Email":                   "ئیمەیل",
		"Phone Number":            "ژمارەی تەلەفۆن",
		"Address":                 "ناونیشان",
		"Date of Birth":           "ڕێکەوتی لەدایکبوون",
		"Gender":                  "ڕەگەز",
		"Biography":               "ژیاننامە",
		"Field of Study":          "بواری خوێندن",
		"Current Education Level": "ئاستی خوێندنی ئێستا",
		"Preferred Study Level":   "ئاستی خوێندنی دڵخواز",
		"GPA":                     "نمرەی گشتی",
		"Graduation Year":         "ساڵی دەرچوون",
		"University Name":         "ناوی زانکۆ",
		"Research Interests":      "بەرژەوەندیەکانی تویژینەوە",
		"Academic Awards":         "خەڵاتەکانی ئەکادیمی",
		"Publications":            "بڵاوکراوەکان",
		"Work Experience":         "ئەزموونی کار",
		"Volunteer Experience":    "ئەزموونی خۆبەخشانە",
		"Technical Skills":        "لێهاتوویی تەکنیکی",
		"Language Skills":         "لێهاتوویی زمان",
		"Experience":              "ئەزموون",
		"Education":               "خوێندن",
		"Skills":                  "لێهاتووی",
		"Welcome":                 "بەخێربێیت",
		"Welcome back":            "بەخێربگەڕێیتەوە",
		"Get Started":             "دەستپێکردن",
		"Welcome Back":            "بەخێربگەڕێیتەوە",
		"Kurdish Students":        "خوێندکارانی کورد",
		"Kurdish Community":       "کۆمەڵگای کوردی",
		"Kurdish Language":        "زمانی کوردی",
		"Kurdish Region":          "هەرێمی کوردی",
		"Kurdish Name":            "ناوی کوردی",
		"Your Journey to Higher Education Starts Here": "گەشتەکەت بۆ خوێندنی بەرز لێرەوە دەستپێدەکات",
		"Supporting Kurdish students from all regions": "پشتگیری خوێندکارانی کورد لە هەموو هەرێمەکان",
		"Find Your Perfect Study Destination": "شوێنی تەواوی خوێندنەکەت بدۆزەرەوە",
		"Learn More":                          "زیاتر بزانە",
		"View Details":                        "وردەکاریەکان ببینە",
		"View All":                            "هەموو ببینە",
		"Continue":                            "بەردەوامبوون",
		"Next":                                "دواتر",
		"Previous":                            "پێشتر",
		"ago":                                 "لەمەوپێش",
		"Updated":                             "نوێکراوەتەوە",
		"Basic Information":                   "زانیاری بنەڕەتی",
		"Contact Information":                 "زانیاری پەیوەندیکردن",
		"Academic Information":                "زانیاری ئەکادیمی",
		"Regional & Academic Information":     "زانیاری هەرێمی و ئەکادیمی",
		"Create Account":                      "هەژماری دروست بکە",
		"Sign in to continue your academic journey": "بچۆرەوە ناوەوە بۆ بەردەوامبوونی گەشتی ئەکادیمیت",
		"Username":                                  "ناوی بەکارهێنەر",
		"Password":                                  "وشەی نهێنی",
		"Sign In":                                   "چوونەژوورەوە",
		"My Resumes":                                "ژیان نامەکانم",
		"Create New Resume":                         "ژیان نامەی نوێ دروست بکە",
		"Email Templates":                           "قاڵبەکانی ئیمەیل",
		"Subject":                                   "بابەت",
		"Message":                                   "پەیام",
		"Send":                                      "ناردن",
		"Reply":                                     "وەڵامدانەوە",
		"Today":                                     "ئەمڕۆ",
		"Yesterday":                                 "دوێنێ",
		"Tomorrow":                                  "سبەینێ",
		"Week":                                      "هەفتە",
		"Month":                                     "مانگ",
		"Year":                                      "ساڵ",
		"Success":                                   "سەرکەوتوو",
		"Error":                                     "هەڵە",
		"Warning":                                   "ئاگاداری",
		"Info":                                      "زانیاری",
		"Loading":                                   "بارکردن",
		"Kurdish Sorani":                            "کوردی سۆرانی",
		"Kurdish Kurmanji":                          "کوردی کورمانجی",
		"Study Abroad":                              "خوێندن لە دەرەوەی وڵات",
		"Higher Education":                          "خوێندنی بەرز",
		"Academic Journey":                          "گەشتی ئەکادیمی",
		"Education Background":                      "پاشخانی خوێندن",
		"Read More":                                 "زیاتر بخوێنەوە",
		"Go Back":                                   "بگەڕێوە",
		"Required":                                  "پێویست",
		"Optional":                                  "ئیختیاری",
		"Choose":                                    "هەڵبژاردن",
		"Select":                                    "هەڵبژاردن",
		"Upload":                                    "بارکردن",
		"Download":                                  "داگرتن",
		"Help":                                      "یارمەتی",
		"Support":                                   "پشتگیری",
		"FAQ":                                       "پرسیارە دووبارەکان",
		"Contact":                                   "پەیوەندی",
		"About":                                     "دەربارە",
		"Create Professional CV":                    "ژیاننامەیەکی پیشەیی درووست بکە",
		"Track Your Applications":                   "داخوازینامەکانت بەدوایدا بکە",
		"Success Stories":                           "چیرۆکەکانی سەرکەوتن",
		"Student Success":                           "سەرکەوتنی خوێندکار",
		"Achievement":                               "دەستکەوت",
		"Eastern Kurdistan":                         "کوردستانی ڕۆژهەڵات",
		"Southern Kurdistan":                        "کوردستانی باشوور",
		"Northern Kurdistan":                        "کوردستانی باکوور",
		"Western Kurdistan":                         "کوردستانی ڕۆژئاوا",
		"What is your current education level?":     "ئاستی خوێندنی ئێستات چییە؟",
		"What is your preferred study level?":       "ئاستی خوێندنی دڵخوازت چییە؟",
		"What is your field of study?":              "بواری خوێندنت چییە؟",
		"Which region are you from?":                "خەڵکی کام ناوچەیت؟",
	},
	Kurmanji: {
		"Home":                                  "Malper",
		"Dashboard":                             "Panel",
		"Destinations":                          "Ciyên Xwendinê",
		"Resume Builder":                        "Avakirina Jiyannameyê",
		"Communications":                        "Girêdan",
		"Resources":                             "Çavkanî",
		"Login":                                 "Têkevtin",
		"Register":                              "Tomarkirin",
		"Logout":                                "Derketin",
		"Profile":                               "Profîl",
		"Rojhelat":                              "Rojhilat",
		"Başûr":                                 "Başûr",
		"Bakûr":                                 "Bakur",
		"Rojava":                                "Rojava",
		"Diaspora":                              "Derveyî Welat",
		"Bachelor's Degree":                     "Bakalorius",
		"Master's Degree":                       "Master",
		"PhD":                                   "Doktora",
		"Postdoctoral":                          "Piştî Doktorayê",
		"Certificate":                           "Sertîfîka",
		"Diploma":                               "Dîploma",
		"Professional Degree":                   "Dereceya Profesyonel",
		"Countries":                             "Welat",
		"Universities":                          "Zanîngehan",
		"Programs":                              "Bername",
		"Scholarships":                          "Bursan",
		"City":                                  "Bajar",
		"Country":                               "Welat",
		"Search":                                "Lêgerîn",
		"Filter":                                "Parzûnkirin",
		"View":                                  "Dîtin",
		"Edit":                                  "Guharin",
		"Delete":                                "Jêbirin",
		"Save":                                  "Tomarkirin",
		"Cancel":                                "Betal",
		"Submit":                                "Şandin",
		"Create":                                "Afirandin",
		"Update":                                "Nûkirin",
		"Name":                                  "Nav",
		"First Name":                            "Navê Yekem",
		"Last Name":                             "Navê Paşîn",
		"Email":                                 "E-mail",
		"Phone Number":                          "Hejmara Têlefonê",
		"Address":                               "Navnîşan",
		"Biography":                             "Jiyanname",
		"Field of Study":                        "Qada Xwendinê",
		"Current Education Level":               "Asta Xwendina Niha",
		"Preferred Study Level":                 "Asta Xwendina Dilxwaz",
		"GPA":                                   "Nota Giştî",
		"University Name":                       "Navê Zanîngehê",
		"Research Interests":                    "Berjewendiyên Lêkolînê",
		"Welcome":                               "Bi xêr hatî",
		"Welcome back":                          "Bi xêr vegere",
		"Get Started":                           "Destpêkirin",
		"Welcome Back":                          "Bi xêr vegere",
		"Kurdish Students":                      "Xwendekarên Kurd",
		"Kurdish Community":                     "Civaka Kurd",
		"Kurdish Language":                      "Zimanê Kurdî",
		"Kurdish Region":                        "Herêma Kurd",
		"Kurdish Name":                          "Navê Kurdî",
		"Basic Information":                     "Agahdariya Bingehîn",
		"Contact Information":                   "Agahdariya Girêdanê",
		"Academic Information":                  "Agahdariya Akademîk",
		"Regional & Academic Information":       "Agahdariya Herêmî û Akademîk",
		"What is your current education level?": "Asta xwendina te ya niha çi ye?",
		"What is your preferred study level?":   "Asta xwendinê ya ku tu dixwazî çi ye?",
		"What is your field of study?":          "Beşa xwendina te çi ye?",
		"Which region are you from?":            "Tu ji kîjan herêmê yî?",
	},
}

// T translates an English source string. Unknown strings and English
// requests come back unchanged.
func T(loc Locale, msgid string) string {
	if v, ok := messages[loc][msgid]; ok && v != "" {
		return v
	}
	return msgid
}

// Messages returns a copy of the translation table for loc, for tools that
// write catalogs to disk.
func Messages(loc Locale) map[string]string {
	src := messages[loc]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
