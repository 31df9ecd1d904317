package search

import "strings"

// Static knowledge used when web search is unavailable or returns
// nothing usable. Grouped by the enrichment categories the agent
// queries for.
var fallbackByKeyword = map[string][]string{
	"กระบวนการจัดการเรียนรู้": {
		"ใช้กระบวนการสืบเสาะหาความรู้ 5 ขั้น (5E) ได้แก่ สร้างความสนใจ สำรวจและค้นหา อธิบายและลงข้อสรุป ขยายความรู้ และประเมินผล",
		"จัดการเรียนรู้แบบร่วมมือ (Cooperative Learning) แบ่งกลุ่มคละความสามารถเพื่อให้ผู้เรียนช่วยเหลือกัน",
		"ใช้การเรียนรู้โดยใช้ปัญหาเป็นฐาน (Problem-Based Learning) เริ่มจากสถานการณ์ใกล้ตัวผู้เรียน",
		"สอดแทรกการใช้คำถามกระตุ้นคิดระดับสูงตามแนว Bloom's Taxonomy ในทุกขั้นตอน",
	},
	"UDL": {
		"นำเสนอเนื้อหาหลายรูปแบบ ทั้งภาพ เสียง ข้อความ และของจริง (Multiple Means of Representation)",
		"เปิดทางเลือกให้ผู้เรียนแสดงออกได้หลายวิธี เช่น พูด เขียน วาดภาพ หรือลงมือปฏิบัติ (Multiple Means of Action and Expression)",
		"สร้างแรงจูงใจด้วยทางเลือกของกิจกรรมและการเชื่อมโยงกับชีวิตจริง (Multiple Means of Engagement)",
		"ใช้สื่อดิจิทัลที่ปรับขนาดตัวอักษรและมีเสียงบรรยายประกอบสำหรับผู้เรียนที่มีความบกพร่องทางการเห็น",
	},
	"ห้องเรียนรวม": {
		"จัดทำแผนการจัดการศึกษาเฉพาะบุคคล (IEP) ร่วมกับครูการศึกษาพิเศษสำหรับผู้เรียนที่มีความต้องการจำเป็นพิเศษ",
		"ใช้ระบบเพื่อนช่วยเพื่อน (Peer Buddy) จับคู่ผู้เรียนทั่วไปกับผู้เรียนที่ต้องการความช่วยเหลือ",
		"ปรับเกณฑ์การประเมินและระยะเวลาทำงานให้ยืดหยุ่นตามศักยภาพของผู้เรียนแต่ละคน",
		"จัดสภาพแวดล้อมห้องเรียนให้เข้าถึงได้ ลดสิ่งรบกวน และมีมุมสงบสำหรับผู้เรียนที่ต้องการ",
	},
}

// FallbackResults returns static strategy lines whose keyword group
// matches the query. An unmatched query gets the inclusive-classroom
// group so callers always receive something usable.
func FallbackResults(query string) []string {
	for keyword, lines := range fallbackByKeyword {
		if strings.Contains(query, keyword) || strings.Contains(query, strings.ToLower(keyword)) {
			return lines
		}
	}
	return fallbackByKeyword["ห้องเรียนรวม"]
}
