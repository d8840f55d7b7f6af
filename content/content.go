// Package content is the single source of truth for all site copy.
// Modify this file to customize the entire landing page.
package content

// Feature represents a firm selling point shown in the features section
type Feature struct {
	Title       string
	Description string
	IconName    string
}

// Service represents a practice area
type Service struct {
	Title       string
	Description string
	IconName    string
}

// Stat represents a firm statistic shown in the about section
type Stat struct {
	Value string
	Label string
}

// Testimonial represents a client testimonial
type Testimonial struct {
	Name    string
	Role    string
	Content string
	Rating  int
}

// FAQItem is a single question/answer pair
type FAQItem struct {
	Question string
	Answer   string
}

// FooterLink is a single footer navigation link
type FooterLink struct {
	Label string
	Href  string
}

// SiteContent holds all page copy, contact details and SEO metadata
type SiteContent struct {
	Metadata struct {
		Title       string
		Description string
		Keywords    []string
	}
	Contact struct {
		Phone    string
		WhatsApp string
		Email    string
		Address  string
	}
	Hero struct {
		Badge            string
		Title            string
		Subtitle         string
		CTAText          string
		SecondaryCTAText string
	}
	Features struct {
		SectionTitle    string
		SectionSubtitle string
		Items           []Feature
	}
	About struct {
		Title   string
		Content string
		Stats   []Stat
	}
	Services struct {
		SectionTitle    string
		SectionSubtitle string
		Items           []Service
	}
	Testimonials struct {
		SectionTitle    string
		SectionSubtitle string
		Items           []Testimonial
	}
	FAQ struct {
		SectionTitle string
		Items        []FAQItem
	}
	Footer struct {
		Copyright string
		Links     []FooterLink
	}
}

// Default returns the site content for Cohen & Associates
func Default() *SiteContent {
	c := &SiteContent{}

	c.Metadata.Title = "כהן ושות' - משרד עורכי דין | ייעוץ משפטי מקצועי"
	c.Metadata.Description = "משרד עורכי דין כהן ושות' - ליווי משפטי אישי ומקצועי בדיני משפחה, נדל\"ן, ירושה וליטיגציה. שיחת ייעוץ ראשונה ללא התחייבות."
	c.Metadata.Keywords = []string{"עורך דין", "משרד עורכי דין", "דיני משפחה", "נדל\"ן", "ירושה", "ליטיגציה"}

	c.Contact.Phone = "03-1234567"
	c.Contact.WhatsApp = "972501234567"
	c.Contact.Email = "office@cohen-law.co.il"
	c.Contact.Address = "רחוב הארבעה 28, תל אביב"

	c.Hero.Badge = "מעל 20 שנות ניסיון"
	c.Hero.Title = "הליווי המשפטי שמגיע לך"
	c.Hero.Subtitle = "משרד עורכי דין כהן ושות' מעניק ייצוג משפטי אישי, מקצועי ונחוש - עד להשגת התוצאה הטובה ביותר עבורך."
	c.Hero.CTAText = "לתיאום שיחת ייעוץ"
	c.Hero.SecondaryCTAText = "תחומי התמחות"

	c.Features.SectionTitle = "למה לבחור בנו"
	c.Features.SectionSubtitle = "הערכים שמובילים אותנו בכל תיק"
	c.Features.Items = []Feature{
		{Title: "ליווי אישי", Description: "כל לקוח מקבל מענה ישיר מעורך הדין המטפל, לא ממזכירות.", IconName: "user"},
		{Title: "זמינות מלאה", Description: "מענה טלפוני ובוואטסאפ גם מעבר לשעות הפעילות.", IconName: "clock"},
		{Title: "שקיפות בשכר טרחה", Description: "הצעת מחיר ברורה מראש, ללא הפתעות.", IconName: "shield"},
		{Title: "נחישות בליטיגציה", Description: "ניסיון עשיר בבתי משפט בכל הערכאות.", IconName: "scale"},
	}

	c.About.Title = "אודות המשרד"
	c.About.Content = "משרד עורכי דין כהן ושות' נוסד בשנת 2003 ומלווה מאז אלפי לקוחות פרטיים ועסקיים. אנחנו מאמינים שייצוג משפטי טוב מתחיל בהקשבה - ולכן כל תיק נפתח בפגישת היכרות מעמיקה וללא התחייבות."
	c.About.Stats = []Stat{
		{Value: "+20", Label: "שנות ניסיון"},
		{Value: "+3,000", Label: "לקוחות מרוצים"},
		{Value: "98%", Label: "שביעות רצון"},
	}

	c.Services.SectionTitle = "תחומי התמחות"
	c.Services.SectionSubtitle = "מענה משפטי מקיף תחת קורת גג אחת"
	c.Services.Items = []Service{
		{Title: "דיני משפחה", Description: "גירושין, מזונות, משמורת והסכמי ממון - ברגישות ובדיסקרטיות.", IconName: "heart"},
		{Title: "מקרקעין ונדל\"ן", Description: "ליווי עסקאות מכר, קבוצות רכישה והתחדשות עירונית.", IconName: "home"},
		{Title: "צוואות וירושות", Description: "עריכת צוואות, צווי ירושה וניהול עיזבונות.", IconName: "document"},
		{Title: "ליטיגציה מסחרית", Description: "ייצוג בסכסוכים עסקיים ותביעות כספיות.", IconName: "briefcase"},
	}

	c.Testimonials.SectionTitle = "לקוחות ממליצים"
	c.Testimonials.SectionSubtitle = "מה אומרים עלינו"
	c.Testimonials.Items = []Testimonial{
		{Name: "רונית לוי", Role: "לקוחה פרטית", Content: "ליווי מקצועי ואנושי לאורך כל הליך הגירושין. הרגשתי שיש מי שנלחם בשבילי.", Rating: 5},
		{Name: "אבי מזרחי", Role: "יזם נדל\"ן", Content: "סגרנו עסקת מקרקעין מורכבת בזמן שיא. מומלץ בחום.", Rating: 5},
		{Name: "דנה כץ", Role: "בעלת עסק", Content: "תביעה מסחרית שנראתה אבודה הסתיימה בפשרה מצוינת עבורנו.", Rating: 5},
	}

	c.FAQ.SectionTitle = "שאלות נפוצות"
	c.FAQ.Items = []FAQItem{
		{Question: "כמה עולה שיחת ייעוץ ראשונה?", Answer: "שיחת ההיכרות הראשונה היא ללא עלות וללא התחייבות."},
		{Question: "כמה זמן לוקח הליך גירושין?", Answer: "הליך בהסכמה יכול להסתיים תוך חודשים ספורים; הליך שנוי במחלוקת עשוי להימשך שנה ויותר, תלוי במורכבות."},
		{Question: "האם אתם מטפלים בתיקים בכל הארץ?", Answer: "כן. המשרד מייצג לקוחות בבתי משפט ובלשכות רישום בכל רחבי הארץ."},
		{Question: "איך שומרים על סודיות הפנייה?", Answer: "כל פנייה מטופלת בדיסקרטיות מלאה ומכוסה בחיסיון עורך דין-לקוח."},
	}

	c.Footer.Copyright = "© כהן ושות' משרד עורכי דין. כל הזכויות שמורות."
	c.Footer.Links = []FooterLink{
		{Label: "מדיניות פרטיות", Href: "/privacy"},
		{Label: "הצהרת נגישות", Href: "/accessibility-statement"},
	}

	return c
}
