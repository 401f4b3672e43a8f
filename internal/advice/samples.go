package advice

// Sample is a ready-made question offered to first-time users.
type Sample struct {
	Title    string `json:"title"`
	Question string `json:"question"`
}

var samples = []Sample{
	{Title: "ভাড়াটিয়াদের অধিকার", Question: "বাংলাদেশে ভাড়াটিয়াদের আইনি অধিকার কী?"},
	{Title: "জমি দখল", Question: "যদি আমার জমি দখল হয়ে যায়, তাহলে আমি কি করতে পারি?"},
	{Title: "মিথ্যা অভিযোগ", Question: "কোন পরিস্থিতিতে মিথ্যা অভিযোগের বিরুদ্ধে আইনি পদক্ষেপ নেওয়া যায়?"},
	{Title: "নারী ও শিশু", Question: "বাংলাদেশে নারী ও শিশুদের নিরাপত্তা সম্পর্কিত আইন কী?"},
}

// Samples returns a copy of the built-in sample questions.
func Samples() []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	return out
}
