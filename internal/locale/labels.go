package locale

import "wm-backend/internal/model"

var fieldLabels = map[string]map[model.FieldName]string{
	"tr": {
		model.FieldWorkName:             "İsim",
		model.FieldCategory:             "Kategori",
		model.FieldPrice:                "Fiyat",
		model.FieldType:                 "Tip",
		model.FieldSalesChannel:         "Satış Kanalı",
		model.FieldDesigner:             "Tasarımcı",
		model.FieldDesignStartDate:      "Tasarım Başlangıç Tarihi",
		model.FieldDesignEndDate:        "Tasarım Bitiş Tarihi",
		model.FieldConfirmDate:          "Onay Tarihi",
		model.FieldPrintingLocation:     "Baskı Lokasyonu",
		model.FieldPrintingConfirm:      "Baskı Onayı",
		model.FieldPrintingStartDate:    "Baskı Başlangıç Tarihi",
		model.FieldPrintingEndDate:      "Baskı Bitiş Tarihi",
		model.FieldPrintingControl:      "Baskı Kontrolü",
		model.FieldPrintingControlledBy: "Kontrol Eden",
		model.FieldPrintingControlDate:  "Kontrol Tarihi",
		model.FieldMixed:                "Karışık",
		model.FieldPackagingDate:        "Paketleme Tarihi",
		model.FieldStockEntry:           "Stok Girişi",
		model.FieldShippingDate:         "Sevkiyat Tarihi",
		model.FieldLinks:                "Bağlantılar",
		model.FieldNote:                 "Not",
	},
	"en": {
		model.FieldWorkName:             "Name",
		model.FieldCategory:             "Category",
		model.FieldPrice:                "Price",
		model.FieldType:                 "Type",
		model.FieldSalesChannel:         "Sales Channel",
		model.FieldDesigner:             "Designer",
		model.FieldDesignStartDate:      "Design Start Date",
		model.FieldDesignEndDate:        "Design End Date",
		model.FieldConfirmDate:          "Confirm Date",
		model.FieldPrintingLocation:     "Printing Location",
		model.FieldPrintingConfirm:      "Printing Confirm",
		model.FieldPrintingStartDate:    "Printing Start Date",
		model.FieldPrintingEndDate:      "Printing End Date",
		model.FieldPrintingControl:      "Printing Control",
		model.FieldPrintingControlledBy: "Controlled By",
		model.FieldPrintingControlDate:  "Control Date",
		model.FieldMixed:                "Mixed",
		model.FieldPackagingDate:        "Packaging Date",
		model.FieldStockEntry:           "Stock Entry",
		model.FieldShippingDate:         "Shipping Date",
		model.FieldLinks:                "Links",
		model.FieldNote:                 "Note",
	},
}

var capabilityLabels = map[string]map[model.Capability]string{
	"tr": {
		model.CapabilityWorkCreate: "İş Oluşturma",
		model.CapabilityWorkDelete: "İş Silme",
	},
	"en": {
		model.CapabilityWorkCreate: "Create Work",
		model.CapabilityWorkDelete: "Delete Work",
	},
}

var levelLabels = map[string]map[model.Level]string{
	"tr": {
		model.LevelNone:  "Yetki Yok",
		model.LevelRead:  "Okuma",
		model.LevelWrite: "Yazma",
	},
	"en": {
		model.LevelNone:  "No Access",
		model.LevelRead:  "Read",
		model.LevelWrite: "Write",
	},
}

var actionLabels = map[string]map[model.Action]string{
	"tr": {
		model.ActionCreate: "Oluşturma",
		model.ActionUpdate: "Güncelleme",
		model.ActionDelete: "Silme",
	},
	"en": {
		model.ActionCreate: "Create",
		model.ActionUpdate: "Update",
		model.ActionDelete: "Delete",
	},
}
