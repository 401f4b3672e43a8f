package advice

import "strings"

// Messages holds the fixed display strings for one language.
type Messages struct {
	Header            string
	Disclaimer        string
	EmergencyNotice   string
	ErrorMarker       string
	EmptyQuery        string
	BackendFailure    string
	CredentialMissing string
	TranslationFailed string
}

var bengali = Messages{
	Header:            "✅ **আপনার আইনি পরামর্শ:**",
	Disclaimer:        "⚠️ **ডিসক্লেমার:** এটি একটি AI-ভিত্তিক আইনি সহায়তা, পেশাদার আইনজীবীর পরামর্শ নয়।",
	EmergencyNotice:   "🚨 **জরুরি সতর্কতা:** আপনার প্রশ্নটি একটি জরুরি পরিস্থিতির ইঙ্গিত দিচ্ছে। অবিলম্বে জাতীয় জরুরি সেবা ৯৯৯ নম্বরে কল করুন অথবা নিকটস্থ থানায় যোগাযোগ করুন। নারী ও শিশু নির্যাতনের ক্ষেত্রে ১০৯ নম্বরে কল করুন। এটি পেশাদার আইনি পরামর্শ নয়।",
	ErrorMarker:       "⚠️ **ত্রুটি:**",
	EmptyQuery:        "দয়া করে আপনার আইনি প্রশ্নটি লিখুন।",
	BackendFailure:    "আইনি পরামর্শ পাওয়া যায়নি, দয়া করে পুনরায় চেষ্টা করুন।",
	CredentialMissing: "পরিষেবাটি এখনও কনফিগার করা হয়নি (API কী পাওয়া যায়নি)। অনুগ্রহ করে পরে চেষ্টা করুন।",
	TranslationFailed: "অনুবাদ করা সম্ভব হয়নি। দয়া করে পুনরায় চেষ্টা করুন।",
}

var english = Messages{
	Header:            "✅ **Your legal advice:**",
	Disclaimer:        "⚠️ **Disclaimer:** This is AI-based legal assistance, not advice from a professional lawyer.",
	EmergencyNotice:   "🚨 **Emergency notice:** Your question suggests an emergency. Call the national emergency service at 999 or contact the nearest police station right away. For violence against women and children, call 109. This is not professional legal counsel.",
	ErrorMarker:       "⚠️ **Error:**",
	EmptyQuery:        "Please enter your legal question.",
	BackendFailure:    "Legal advice could not be retrieved, please try again.",
	CredentialMissing: "The service is not configured yet (API key missing). Please try again later.",
	TranslationFailed: "The answer could not be translated. Please try again.",
}

// MessagesFor returns the message set for a display language, defaulting to Bengali.
func MessagesFor(lang string) Messages {
	switch strings.ToLower(strings.SplitN(lang, "-", 2)[0]) {
	case "en":
		return english
	default:
		return bengali
	}
}

func (m Messages) errorLine(text string) string {
	return m.ErrorMarker + " " + text
}
