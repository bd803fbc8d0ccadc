package service

func hospital(id, name, class string, lat, lng float64, facilities, specialties []string) HospitalData {
	return HospitalData{
		HospitalID:  Str(id),
		Name:        Str(name),
		ClassType:   Str(class),
		Location:    &Location{Latitude: &lat, Longitude: &lng},
		Facilities:  facilities,
		Specialties: specialties,
	}
}

func doctor(id, name, specialization, hospitalID string) DoctorData {
	return DoctorData{DoctorID: Str(id), Name: Str(name), Specialization: Str(specialization), PrimaryHospitalID: Str(hospitalID)}
}

var fixtureHospitals = []HospitalData{
	hospital("H001", "RS Harapan Sehat", "A", -6.200000, 106.816666, []string{"ICU", "Emergency", "Laboratory"}, []string{"Cardiology", "Neurology", "Pediatrics"}),
	hospital("H002", "RS Mitra Keluarga", "A", -6.175000, 106.827777, []string{"ICU", "Emergency", "Laboratory", "Radiology"}, []string{"Orthopedics", "Surgery", "Internal Medicine"}),
	hospital("H003", "RS Siloam", "A", -6.225000, 106.800000, []string{"ICU", "Emergency", "Laboratory", "CT Scan"}, []string{"Oncology", "Cardiology", "Neurosurgery"}),
	hospital("H004", "RS Hermina", "B", -6.195000, 106.850000, []string{"Emergency", "Laboratory", "Maternity"}, []string{"Obstetrics", "Gynecology", "Pediatrics"}),
	hospital("H005", "RSUD Kota", "B", -6.210000, 106.830000, []string{"Emergency", "Laboratory"}, []string{"General Medicine", "Surgery"}),
	hospital("H006", "RS Medika Permata", "B", -6.180000, 106.840000, []string{"ICU", "Emergency", "Laboratory"}, []string{"Internal Medicine", "Pulmonology"}),
	hospital("H007", "RS Graha Medika", "C", -6.230000, 106.820000, []string{"Emergency", "Laboratory"}, []string{"General Medicine"}),
	hospital("H008", "RS Bunda Sejahtera", "B", -6.190000, 106.860000, []string{"Emergency", "Laboratory", "Maternity"}, []string{"Obstetrics", "Pediatrics"}),
}

var fixtureDoctors = []DoctorData{
	doctor("D001", "Ahmad Wijaya, Sp.PD", "Internal Medicine", "H001"),
	doctor("D002", "Siti Nurhaliza, Sp.A", "Pediatrics", "H001"),
	doctor("D003", "Budi Santoso, Sp.B", "Surgery", "H002"),
	doctor("D004", "Rina Kusuma, Sp.OG", "Obstetrics & Gynecology", "H004"),
	doctor("D005", "Hendra Gunawan, Sp.JP", "Cardiology", "H003"),
	doctor("D006", "Dewi Lestari, Sp.M", "Ophthalmology", "H002"),
	doctor("D007", "Agus Setiawan, Sp.THT", "ENT", "H006"),
	doctor("D008", "Maya Sari, Sp.KK", "Dermatology", "H001"),
}

var fixtureDiagnoses = []DiagnosisData{
	{DiagnosisID: "DX001", ICD10Code: "E11", Name: "Diabetes Mellitus Type 2", AvgCost: 13200000, SeverityLevel: "High"},
	{DiagnosisID: "DX002", ICD10Code: "J20", Name: "Acute Bronchitis", AvgCost: 3250000, SeverityLevel: "Low"},
	{DiagnosisID: "DX003", ICD10Code: "K35", Name: "Appendicitis", AvgCost: 28500000, SeverityLevel: "High"},
	{DiagnosisID: "DX004", ICD10Code: "I25", Name: "Coronary Artery Disease", AvgCost: 51000000, SeverityLevel: "High"},
	{DiagnosisID: "DX005", ICD10Code: "O80", Name: "Normal Delivery", AvgCost: 8500000, SeverityLevel: "Medium"},
	{DiagnosisID: "DX006", ICD10Code: "I10", Name: "Hypertension", AvgCost: 4200000, SeverityLevel: "Medium"},
	{DiagnosisID: "DX007", ICD10Code: "H25", Name: "Cataract", AvgCost: 15000000, SeverityLevel: "Medium"},
	{DiagnosisID: "DX008", ICD10Code: "J32", Name: "Chronic Sinusitis", AvgCost: 4200000, SeverityLevel: "Low"},
	{DiagnosisID: "DX009", ICD10Code: "S72", Name: "Fracture of Femur", AvgCost: 45000000, SeverityLevel: "High"},
	{DiagnosisID: "DX010", ICD10Code: "L20", Name: "Atopic Dermatitis (Eczema)", AvgCost: 1500000, SeverityLevel: "Low"},
	{DiagnosisID: "DX011", ICD10Code: "J18", Name: "Pneumonia", AvgCost: 18500000, SeverityLevel: "High"},
	{DiagnosisID: "DX012", ICD10Code: "K29", Name: "Gastritis", AvgCost: 2800000, SeverityLevel: "Low"},
	{DiagnosisID: "DX013", ICD10Code: "M54", Name: "Dorsalgia (Back Pain)", AvgCost: 3500000, SeverityLevel: "Low"},
	{DiagnosisID: "DX014", ICD10Code: "N18", Name: "Chronic Kidney Disease", AvgCost: 65000000, SeverityLevel: "High"},
	{DiagnosisID: "DX015", ICD10Code: "I21", Name: "Acute Myocardial Infarction", AvgCost: 95000000, SeverityLevel: "High"},
	{DiagnosisID: "DX016", ICD10Code: "A09", Name: "Gastroenteritis", AvgCost: 2500000, SeverityLevel: "Low"},
	{DiagnosisID: "DX017", ICD10Code: "O82", Name: "Cesarean Section", AvgCost: 18000000, SeverityLevel: "Medium"},
	{DiagnosisID: "DX018", ICD10Code: "E78", Name: "Hyperlipidemia", AvgCost: 3800000, SeverityLevel: "Medium"},
	{DiagnosisID: "DX019", ICD10Code: "J45", Name: "Asthma", AvgCost: 5200000, SeverityLevel: "Medium"},
	{DiagnosisID: "DX020", ICD10Code: "I63", Name: "Cerebral Infarction (Stroke)", AvgCost: 78000000, SeverityLevel: "High"},
}

var fixtureClaims = []ClaimData{
	{ClaimID: "CLM001", DoctorID: "D001", HospitalID: "H001", Diagnosis: "Diabetes Mellitus Type 2", TotalCost: 45750000, Label: "FRAUD"},
	{ClaimID: "CLM002", DoctorID: "D002", HospitalID: "H001", Diagnosis: "Acute Bronchitis", TotalCost: 3250000, Label: "NORMAL"},
	{ClaimID: "CLM003", DoctorID: "D003", HospitalID: "H002", Diagnosis: "Appendicitis", TotalCost: 28500000, Label: "NORMAL"},
	{ClaimID: "CLM004", DoctorID: "D005", HospitalID: "H003", Diagnosis: "Coronary Artery Disease", TotalCost: 125000000, Label: "FRAUD"},
	{ClaimID: "CLM005", DoctorID: "D004", HospitalID: "H004", Diagnosis: "Normal Delivery", TotalCost: 8500000, Label: "NORMAL"},
	{ClaimID: "CLM006", DoctorID: "D001", HospitalID: "H001", Diagnosis: "Hypertension", TotalCost: 52000000, Label: "FRAUD"},
	{ClaimID: "CLM007", DoctorID: "D006", HospitalID: "H002", Diagnosis: "Cataract Surgery", TotalCost: 15000000, Label: "NORMAL"},
	{ClaimID: "CLM008", DoctorID: "D007", HospitalID: "H006", Diagnosis: "Chronic Sinusitis", TotalCost: 4200000, Label: "NORMAL"},
	{ClaimID: "CLM009", DoctorID: "D003", HospitalID: "H002", Diagnosis: "Fracture Femur", TotalCost: 95000000, Label: "FRAUD"},
	{ClaimID: "CLM010", DoctorID: "D008", HospitalID: "H001", Diagnosis: "Eczema", TotalCost: 1500000, Label: "NORMAL"},
}

type chatReply struct {
	keywords []string
	answer   string
}

var chatReplies = []chatReply{
	{[]string{"clm-", "klaim"}, "**Status Klaim**\n\nSaya telah mengecek klaim yang Anda maksud.\n\n- **Status**: Dalam Proses Review\n- **Tingkat Risiko**: Rendah (15%)\n- **Estimasi Selesai**: 2-3 hari kerja\n\nApakah ada yang ingin Anda tanyakan lebih lanjut?"},
	{[]string{"fraud", "indikator"}, "**Indikator Fraud Umum**\n\n1. **Biaya Tidak Wajar** - Biaya >200% dari rata-rata\n2. **Pola Temporal** - Clustering klaim pada waktu tertentu\n3. **Duplikasi** - Klaim berulang dalam periode singkat\n4. **Anomali Data** - Ketidaksesuaian informasi pasien\n\nButuh analisis lebih detail untuk klaim tertentu?"},
	{[]string{"statistik", "laporan"}, "**Statistik Fraud**\n\n- Total Klaim Dianalisis: 1,247\n- Potensi Fraud Terdeteksi: 89 (7.1%)\n- Klaim Ditolak: 23 (1.8%)\n- Total Nilai Dicegah: Rp 2.3 Miliar"},
	{[]string{"rumah sakit", "rs"}, "**Informasi Provider**\n\nSaya dapat membantu menganalisis track record rumah sakit, pola klaim provider dan riwayat investigasi.\n\nSilakan sebutkan nama rumah sakit yang ingin Anda cek."},
	{[]string{"dokter", "dr."}, "**Analisis Dokter**\n\nSaya dapat memberikan volume klaim 90 hari terakhir, pola diagnosis dan perbandingan dengan dokter sejawat.\n\nMohon berikan nama lengkap dokter yang ingin dianalisis."},
	{[]string{"halo", "hai", "hello"}, "Halo! Selamat datang di BPJS JKB Assistant.\n\nSaya dapat membantu cek status klaim, analisis potensi fraud, informasi provider serta statistik dan laporan."},
	{[]string{"terima kasih", "thanks"}, "Sama-sama! Senang bisa membantu.\n\nJika ada pertanyaan lain tentang deteksi fraud atau klaim, jangan ragu untuk bertanya."},
	{[]string{"bantuan", "help"}, "**Panduan Penggunaan**\n\n1. **Status Klaim** - \"Cek klaim CLM-2025-001234\"\n2. **Analisis Fraud** - \"Apa indikator fraud?\"\n3. **Provider** - \"Analisis RS Harapan Sehat\"\n4. **Statistik** - \"Tampilkan statistik bulan ini\""},
}

const chatFallback = "Maaf, saya belum sepenuhnya memahami pertanyaan Anda.\n\nSaya dapat membantu dengan status klaim, deteksi fraud, analisis provider serta statistik dan laporan.\n\nBisa tolong perjelas pertanyaan Anda?"
