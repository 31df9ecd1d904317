package constant

import "ai-lessonplan-be/pkg/prompt"

// Template identifiers used by the generation pipeline.
const (
	PromptCurriculumSelect    = "curriculum-select"
	PromptContentSummary      = "content-summary"
	PromptObjectives          = "objectives"
	PromptActivityDesign      = "activity-design"
	PromptEvaluationDesign    = "evaluation-design"
	PromptReflectionFollowUp  = "reflection-followup"
	PromptEnrichmentDistill   = "enrichment-distill"
	PromptEnrichmentReasoning = "enrichment-reasoning"
)

const (
	curriculumSelectSystem = `คุณคือผู้เชี่ยวชาญด้านหลักสูตรแกนกลางการศึกษาขั้นพื้นฐานของประเทศไทย
หน้าที่ของคุณคือเลือกมาตรฐานการเรียนรู้และตัวชี้วัดที่ตรงกับหัวข้อการสอนมากที่สุดจากข้อความหลักสูตรที่ให้มา
ตอบเป็น JSON เท่านั้น ห้ามใส่คำอธิบายอื่นนอก JSON`

	curriculumSelectUser = `ข้อความจากหลักสูตร:
{passages}

กลุ่มสาระการเรียนรู้: {subject}
เรื่องที่ต้องการสอน: {topic}
ระดับชั้น: {level}

เลือกมาตรฐานการเรียนรู้และตัวชี้วัดที่เหมาะสมที่สุด แล้วตอบเป็น JSON ตามโครงสร้างนี้:
{"learning_area": "ชื่อกลุ่มสาระ", "standard": "รหัสและคำอธิบายมาตรฐาน", "interim_indicators": "ตัวชี้วัดระหว่างทาง", "final_indicators": "ตัวชี้วัดปลายทาง", "selection_reason": "เหตุผลที่เลือก"}

หากไม่พบมาตรฐานหรือตัวชี้วัดที่เกี่ยวข้องกับเรื่องนี้เลย ให้ใส่ค่า "ไม่พบ" ในช่อง standard`

	contentSummarySystem = `คุณคือครูผู้เชี่ยวชาญการออกแบบสาระการเรียนรู้สำหรับห้องเรียนรวมในประเทศไทย
ตอบเป็น JSON เท่านั้น`

	contentSummaryUser = `กลุ่มสาระการเรียนรู้: {subject}
เรื่อง: {topic}
ระดับชั้น: {level}
มาตรฐานการเรียนรู้: {standard}
ตัวชี้วัด: {indicators}

จงสรุปสาระการเรียนรู้สำหรับเรื่องนี้ แยกเป็นด้านความรู้ ด้านทักษะกระบวนการ และด้านคุณลักษณะ
พร้อมสาระสำคัญหนึ่งย่อหน้า ตอบเป็น JSON ตามโครงสร้างนี้:
{"content": {"knowledge": "ด้านความรู้", "process": "ด้านทักษะกระบวนการ", "attitude": "ด้านคุณลักษณะ"}, "key_content": "สาระสำคัญ"}`

	objectivesSystem = `คุณคือครูผู้เชี่ยวชาญการเขียนจุดประสงค์การเรียนรู้เชิงพฤติกรรมสำหรับห้องเรียนรวม
จุดประสงค์ต้องวัดได้และครอบคลุมด้านความรู้ (K) ทักษะกระบวนการ (P) และคุณลักษณะ (A)
ตอบเป็น JSON เท่านั้น`

	objectivesUser = `กลุ่มสาระการเรียนรู้: {subject}
เรื่อง: {topic}
ระดับชั้น: {level}
สาระการเรียนรู้: {content}
จำนวนนักเรียน: {num_students} คน
จำนวนคาบเรียน: {study_period} คาบ
ประเภทผู้เรียนในห้องเรียนรวม: {student_types}

จงเขียนจุดประสงค์การเรียนรู้เชิงพฤติกรรม 3-5 ข้อที่เหมาะกับผู้เรียนทุกประเภทข้างต้น
ตอบเป็น JSON ตามโครงสร้างนี้:
{"objectives": ["จุดประสงค์ข้อที่ 1", "จุดประสงค์ข้อที่ 2"]}`

	activityDesignSystem = `คุณคือครูผู้เชี่ยวชาญการออกแบบกิจกรรมการเรียนรู้สำหรับห้องเรียนรวมตามหลัก Universal Design for Learning (UDL)
กิจกรรมต้องรองรับผู้เรียนทุกประเภทในห้องเรียน และเวลารวมของทุกขั้นตอนต้องเท่ากับเวลาที่กำหนด
ตอบเป็น JSON เท่านั้น`

	activityDesignUser = `กลุ่มสาระการเรียนรู้: {subject}
เรื่อง: {topic}
ระดับชั้น: {level}
จุดประสงค์การเรียนรู้: {objectives}
สาระการเรียนรู้: {content}
จำนวนนักเรียน: {num_students} คน
จำนวนคาบเรียน: {study_period} คาบ รวม {total_minutes} นาที
ประเภทผู้เรียนในห้องเรียนรวม: {student_types}

ตัวอย่างกระบวนการจัดการเรียนรู้ที่เกี่ยวข้อง:
{teaching_process_examples}

รายละเอียดเนื้อหาเพิ่มเติม:
{lesson_details}

กลยุทธ์ UDL ที่แนะนำ:
{udl_strategies}

กลยุทธ์การจัดการเรียนรวมที่แนะนำ:
{inclusive_strategies}

จงออกแบบกิจกรรมการเรียนรู้เป็นขั้นตอน (ขั้นนำ ขั้นสอน ขั้นสรุป) ระบุเวลาเป็นนาทีในแต่ละขั้นตอน
เวลารวมของทุกขั้นตอนต้องเท่ากับ {total_minutes} นาทีพอดี พร้อมสื่อและแหล่งการเรียนรู้
ตอบเป็น JSON ตามโครงสร้างนี้:
{"activities": {"introduction": {"description": "กิจกรรมขั้นนำ", "minutes": 10}, "development": {"description": "กิจกรรมขั้นสอน", "minutes": 30}, "conclusion": {"description": "กิจกรรมขั้นสรุป", "minutes": 10}}, "teaching_materials": {"media": "สื่อการเรียนรู้", "resources": "แหล่งการเรียนรู้"}}`

	evaluationDesignSystem = `คุณคือครูผู้เชี่ยวชาญการวัดและประเมินผลการเรียนรู้สำหรับห้องเรียนรวม
การประเมินต้องสอดคล้องกับจุดประสงค์และยืดหยุ่นสำหรับผู้เรียนทุกประเภท
ตอบเป็น JSON เท่านั้น`

	evaluationDesignUser = `จุดประสงค์การเรียนรู้: {objectives}
กิจกรรมการเรียนรู้: {activities}
ประเภทผู้เรียนในห้องเรียนรวม: {student_types}

จงออกแบบการวัดและประเมินผล ระบุวิธีการ เครื่องมือ และเกณฑ์การประเมินที่สอดคล้องกับจุดประสงค์แต่ละข้อ
ตอบเป็น JSON ตามโครงสร้างนี้:
{"evaluation": {"methods": "วิธีการวัดและประเมินผล", "tools": "เครื่องมือ", "criteria": "เกณฑ์การประเมิน"}}`

	reflectionFollowUpSystem = `คุณคือที่ปรึกษาด้านการจัดการเรียนรู้ ช่วยครูทบทวนและปรับปรุงแผนการจัดการเรียนรู้
ตอบอย่างกระชับ ตรงประเด็น เป็นภาษาไทย`

	reflectionFollowUpUser = `แผนการจัดการเรียนรู้ปัจจุบัน:
{lesson_plan}

คำถามหรือข้อสงสัยของครู:
{question}

จงตอบคำถามโดยอ้างอิงจากแผนการจัดการเรียนรู้ข้างต้น พร้อมข้อเสนอแนะที่นำไปใช้ได้จริง`

	enrichmentDistillSystem = `คุณคือผู้ช่วยวิจัยด้านการศึกษา สกัดใจความสำคัญจากผลการค้นหาให้เป็นข้อแนะนำที่ใช้ได้จริง
ตอบเป็น JSON เท่านั้น`

	enrichmentDistillUser = `หัวข้อที่ค้นหา: {category_focus}
เรื่องที่สอน: {topic} วิชา: {subject} ระดับชั้น: {level}

ผลการค้นหา:
{search_results}

จงสกัดข้อแนะนำที่เกี่ยวข้องและนำไปใช้ออกแบบการสอนได้จริง 3-5 ข้อ
ตอบเป็น JSON ตามโครงสร้างนี้:
{"insights": ["ข้อแนะนำที่ 1", "ข้อแนะนำที่ 2"]}`

	enrichmentReasoningSystem = `คุณคือผู้เชี่ยวชาญด้านการจัดการเรียนรวมและการออกแบบการเรียนรู้ที่เป็นสากล
ตอบเป็น JSON เท่านั้น`

	enrichmentReasoningUser = `หัวข้อ: {category_focus}
เรื่องที่สอน: {topic} วิชา: {subject} ระดับชั้น: {level}
ประเภทผู้เรียนในห้องเรียนรวม: {student_types}

จงเสนอข้อแนะนำจากความรู้ของคุณเอง 3-5 ข้อสำหรับหัวข้อนี้
ตอบเป็น JSON ตามโครงสร้างนี้:
{"insights": ["ข้อแนะนำที่ 1", "ข้อแนะนำที่ 2"]}`
)

// NewPromptRegistry builds the registry preloaded with every pipeline
// template.
func NewPromptRegistry() *prompt.Registry {
	r := prompt.NewRegistry()
	r.Register(PromptCurriculumSelect, prompt.Template{System: curriculumSelectSystem, User: curriculumSelectUser})
	r.Register(PromptContentSummary, prompt.Template{System: contentSummarySystem, User: contentSummaryUser})
	r.Register(PromptObjectives, prompt.Template{System: objectivesSystem, User: objectivesUser})
	r.Register(PromptActivityDesign, prompt.Template{System: activityDesignSystem, User: activityDesignUser})
	r.Register(PromptEvaluationDesign, prompt.Template{System: evaluationDesignSystem, User: evaluationDesignUser})
	r.Register(PromptReflectionFollowUp, prompt.Template{System: reflectionFollowUpSystem, User: reflectionFollowUpUser})
	r.Register(PromptEnrichmentDistill, prompt.Template{System: enrichmentDistillSystem, User: enrichmentDistillUser})
	r.Register(PromptEnrichmentReasoning, prompt.Template{System: enrichmentReasoningSystem, User: enrichmentReasoningUser})
	return r
}
