package locale

// Message keys. Each key is registered for every supported language in
// catalog.go.
const (
	ValueEmpty = "value.empty"
	ValueYes   = "value.yes"
	ValueNo    = "value.no"

	MovementCreated        = "movement.created"
	MovementUpdated        = "movement.updated"
	MovementUpdatedChanges = "movement.updated_changes"
	MovementDeleted        = "movement.deleted"
	ChangePhrase           = "movement.change_phrase"
	UnknownUser            = "movement.unknown_user"

	StatusWaiting   = "status.waiting"
	StatusPrinting  = "status.printing"
	StatusCompleted = "status.completed"

	ErrWriteDenied       = "error.write_denied"
	ErrCreateDenied      = "error.create_denied"
	ErrDeleteDenied      = "error.delete_denied"
	ErrLinkAddDenied     = "error.link_add_denied"
	ErrLinkRemoveDenied  = "error.link_remove_denied"
	ErrLinkInvalidURL    = "error.link_invalid_url"
	ErrLinkURLRequired   = "error.link_url_required"
	ErrLinkNotFound      = "error.link_not_found"
	ErrLinkEntryInvalid  = "error.link_entry_invalid"
	ErrLinkEntryNoURL    = "error.link_entry_no_url"
	ErrLinkEntryBadURL   = "error.link_entry_bad_url"
	ErrWorkNotFound      = "error.work_not_found"
	ErrRequired          = "error.required"
	ErrInvalidValue      = "error.invalid_value"
	ErrLookupMissing     = "error.lookup_missing"
	ErrUserMissing       = "error.user_missing"
	ErrUnknownField      = "error.unknown_field"
	ErrUnknownCapability = "error.unknown_capability"
	ErrInvalidLevel      = "error.invalid_level"
	ErrRoleNameTaken     = "error.role_name_taken"
	ErrRoleNotFound      = "error.role_not_found"
	ErrAssignmentExists  = "error.assignment_exists"
	ErrAssignmentMissing = "error.assignment_missing"
	ErrUserNotFound      = "error.user_not_found"
	ErrUsernameTaken     = "error.username_taken"
	ErrEmailTaken        = "error.email_taken"
	ErrPasswordMismatch  = "error.password_mismatch"
	ErrPasswordShort     = "error.password_short"
	ErrBadCredentials    = "error.bad_credentials"
	ErrCredentialsNeeded = "error.credentials_needed"
	ErrInactiveAccount   = "error.inactive_account"
	ErrSelfDemote        = "error.self_demote"
	ErrSelfDelete        = "error.self_delete"
	ErrSuperuserOnly     = "error.superuser_only"
	ErrMovementNotFound  = "error.movement_not_found"
	ErrLookupNotFound    = "error.lookup_not_found"
	ErrLookupNameTaken   = "error.lookup_name_taken"

	MsgLinkAdded   = "msg.link_added"
	MsgLinkRemoved = "msg.link_removed"
	MsgLoginOK     = "msg.login_ok"
	MsgLogoutOK    = "msg.logout_ok"
	MsgUserCreated = "msg.user_created"
	MsgUserUpdated = "msg.user_updated"
	MsgUserDeleted = "msg.user_deleted"
	MsgUsersFound  = "msg.users_found"
)

var turkish = map[string]string{
	ValueEmpty: "Boş",
	ValueYes:   "Evet",
	ValueNo:    "Hayır",

	MovementCreated:        "%s isimli yeni iş oluşturuldu",
	MovementUpdated:        "%s isimli iş güncellendi",
	MovementUpdatedChanges: "%s isimli iş güncellendi. Değişiklikler: %s",
	MovementDeleted:        "%s isimli iş silindi",
	ChangePhrase:           "%s: %s → %s",
	UnknownUser:            "Bilinmiyor",

	StatusWaiting:   "Beklemede",
	StatusPrinting:  "Baskı",
	StatusCompleted: "Tamamlandı",

	ErrWriteDenied:       "Bu alanlara yazma yetkiniz yok: %s",
	ErrCreateDenied:      "İş oluşturma yetkiniz yok",
	ErrDeleteDenied:      "İş silme yetkiniz yok",
	ErrLinkAddDenied:     "Bağlantı ekleme yetkiniz yok",
	ErrLinkRemoveDenied:  "Bağlantı silme yetkiniz yok",
	ErrLinkInvalidURL:    "Geçerli bir URL giriniz",
	ErrLinkURLRequired:   "Silinecek bağlantı URL'si gerekli",
	ErrLinkNotFound:      "Bağlantı bulunamadı",
	ErrLinkEntryInvalid:  "Bağlantı %d: Geçersiz format",
	ErrLinkEntryNoURL:    "Bağlantı %d: URL zorunludur",
	ErrLinkEntryBadURL:   "Bağlantı %d: Geçersiz URL formatı",
	ErrWorkNotFound:      "İş bulunamadı",
	ErrRequired:          "Bu alan zorunludur",
	ErrInvalidValue:      "Geçersiz değer",
	ErrLookupMissing:     "Seçilen kayıt bulunamadı veya aktif değil",
	ErrUserMissing:       "Seçilen kullanıcı bulunamadı",
	ErrUnknownField:      "Bilinmeyen alan: %s",
	ErrUnknownCapability: "Bilinmeyen sistem izni: %s",
	ErrInvalidLevel:      "Geçersiz yetki seviyesi: %s",
	ErrRoleNameTaken:     "Bu rol adı zaten kullanılıyor",
	ErrRoleNotFound:      "Rol bulunamadı",
	ErrAssignmentExists:  "Bu kullanıcıya bu rol zaten atanmış",
	ErrAssignmentMissing: "Rol ataması bulunamadı",
	ErrUserNotFound:      "Kullanıcı bulunamadı",
	ErrUsernameTaken:     "Bu kullanıcı adı zaten kullanılıyor.",
	ErrEmailTaken:        "Bu email adresi zaten kullanılıyor.",
	ErrPasswordMismatch:  "Şifreler eşleşmiyor.",
	ErrPasswordShort:     "Şifre en az 8 karakter olmalıdır.",
	ErrBadCredentials:    "Kullanıcı adı veya şifre hatalı.",
	ErrCredentialsNeeded: "Kullanıcı adı ve şifre gerekli.",
	ErrInactiveAccount:   "Bu hesap aktif değil.",
	ErrSelfDemote:        "Kendi superuser yetkinizi kaldıramazsınız",
	ErrSelfDelete:        "Kendinizi silemezsiniz",
	ErrSuperuserOnly:     "Bu işlem için yönetici yetkisi gerekli",
	ErrMovementNotFound:  "Hareket kaydı bulunamadı",
	ErrLookupNotFound:    "Kayıt bulunamadı",
	ErrLookupNameTaken:   "Bu isim zaten kullanılıyor",

	MsgLinkAdded:   "Bağlantı eklendi",
	MsgLinkRemoved: "Bağlantı silindi",
	MsgLoginOK:     "Giriş başarılı",
	MsgLogoutOK:    "Çıkış yapıldı",
	MsgUserCreated: "Kullanıcı başarıyla oluşturuldu",
	MsgUserUpdated: "Kullanıcı başarıyla güncellendi",
	MsgUserDeleted: "%s kullanıcısı başarıyla silindi",
	MsgUsersFound:  "%d kullanıcı bulundu",
}

var english = map[string]string{
	ValueEmpty: "Empty",
	ValueYes:   "Yes",
	ValueNo:    "No",

	MovementCreated:        "New work %s created",
	MovementUpdated:        "Work %s updated",
	MovementUpdatedChanges: "Work %s updated. Changes: %s",
	MovementDeleted:        "Work %s deleted",
	ChangePhrase:           "%s: %s → %s",
	UnknownUser:            "Unknown",

	StatusWaiting:   "Waiting",
	StatusPrinting:  "Printing",
	StatusCompleted: "Completed",

	ErrWriteDenied:       "You are not allowed to write these fields: %s",
	ErrCreateDenied:      "You are not allowed to create works",
	ErrDeleteDenied:      "You are not allowed to delete works",
	ErrLinkAddDenied:     "You are not allowed to add links",
	ErrLinkRemoveDenied:  "You are not allowed to remove links",
	ErrLinkInvalidURL:    "Enter a valid URL",
	ErrLinkURLRequired:   "The URL of the link to remove is required",
	ErrLinkNotFound:      "Link not found",
	ErrLinkEntryInvalid:  "Link %d: invalid format",
	ErrLinkEntryNoURL:    "Link %d: URL is required",
	ErrLinkEntryBadURL:   "Link %d: invalid URL format",
	ErrWorkNotFound:      "Work not found",
	ErrRequired:          "This field is required",
	ErrInvalidValue:      "Invalid value",
	ErrLookupMissing:     "The selected entry does not exist or is inactive",
	ErrUserMissing:       "The selected user does not exist",
	ErrUnknownField:      "Unknown field: %s",
	ErrUnknownCapability: "Unknown system permission: %s",
	ErrInvalidLevel:      "Invalid permission level: %s",
	ErrRoleNameTaken:     "This role name is already in use",
	ErrRoleNotFound:      "Role not found",
	ErrAssignmentExists:  "This role is already assigned to the user",
	ErrAssignmentMissing: "Role assignment not found",
	ErrUserNotFound:      "User not found",
	ErrUsernameTaken:     "This username is already in use.",
	ErrEmailTaken:        "This email address is already in use.",
	ErrPasswordMismatch:  "Passwords do not match.",
	ErrPasswordShort:     "Password must be at least 8 characters.",
	ErrBadCredentials:    "Invalid username or password.",
	ErrCredentialsNeeded: "Username and password are required.",
	ErrInactiveAccount:   "This account is inactive.",
	ErrSelfDemote:        "You cannot remove your own superuser flag",
	ErrSelfDelete:        "You cannot delete yourself",
	ErrSuperuserOnly:     "This action requires administrator rights",
	ErrMovementNotFound:  "Movement not found",
	ErrLookupNotFound:    "Entry not found",
	ErrLookupNameTaken:   "This name is already in use",

	MsgLinkAdded:   "Link added",
	MsgLinkRemoved: "Link removed",
	MsgLoginOK:     "Login successful",
	MsgLogoutOK:    "Logged out",
	MsgUserCreated: "User created",
	MsgUserUpdated: "User updated",
	MsgUserDeleted: "User %s deleted",
	MsgUsersFound:  "%d users found",
}
